package enablement

import (
	"featgate/pkg/logging"
)

// ParseRuleTable converts the loosely typed rule-table value a host config
// store returns into a typed rule table. Entries with non-string keys or
// unrecognized rule values are skipped with a warning; parsing never fails.
func ParseRuleTable(raw interface{}) map[string]Rule {
	rules := make(map[string]Rule)
	if raw == nil {
		return rules
	}

	switch m := raw.(type) {
	case map[string]Rule:
		for id, r := range m {
			rules[id] = r
		}
	case map[string]string:
		for id, v := range m {
			parseRuleEntry(rules, id, v)
		}
	case map[string]interface{}:
		for id, v := range m {
			s, ok := v.(string)
			if !ok {
				logging.Warn("Enablement", "Rule for %s has non-string value %v, skipping", id, v)
				continue
			}
			parseRuleEntry(rules, id, s)
		}
	default:
		logging.Warn("Enablement", "Rule table has unexpected type %T, ignoring", raw)
	}
	return rules
}

func parseRuleEntry(rules map[string]Rule, id, value string) {
	r, ok := ParseRule(value)
	if !ok {
		logging.Warn("Enablement", "Rule for %s has invalid value %q, skipping", id, value)
		return
	}
	rules[id] = r
}

// ParseGroupSelection converts the loosely typed enabled-groups value into a
// GroupSelection. A nil value means the key is unset and yields the
// all-eligible selection; a present list, even an empty one, is an explicit
// selection. Non-string elements are skipped with a warning. A value of an
// unexpected shape is treated as unset.
func ParseGroupSelection(raw interface{}) GroupSelection {
	if raw == nil {
		return AllGroups()
	}

	switch list := raw.(type) {
	case []string:
		return SelectGroups(append([]string(nil), list...))
	case []interface{}:
		names := make([]string, 0, len(list))
		for _, v := range list {
			s, ok := v.(string)
			if !ok {
				logging.Warn("Enablement", "Enabled groups entry %v is not a string, skipping", v)
				continue
			}
			names = append(names, s)
		}
		return SelectGroups(names)
	default:
		logging.Warn("Enablement", "Enabled groups has unexpected type %T, treating as unset", raw)
		return AllGroups()
	}
}

package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// TableFormatter renders control tool payloads as plain tables. Known
// featgate payload shapes (feature lists, group lists, resolution decisions,
// events, reconcile results) get dedicated columns; everything else falls
// back to a generic rendering.
type TableFormatter struct {
	options ExecutorOptions
}

// NewTableFormatter creates a table formatter with the given options.
func NewTableFormatter(options ExecutorOptions) *TableFormatter {
	return &TableFormatter{options: options}
}

// FormatData renders parsed JSON data as a table on stdout.
func (f *TableFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatObject(d)
	case []interface{}:
		return f.formatList(d, nil)
	case string:
		fmt.Println(d)
		return nil
	default:
		fmt.Printf("%v\n", d)
		return nil
	}
}

// formatObject dispatches on the payload shape.
func (f *TableFormatter) formatObject(data map[string]interface{}) error {
	if features, ok := data["features"].([]interface{}); ok {
		return f.formatFeatures(features)
	}
	if groups, ok := data["groups"].([]interface{}); ok {
		return f.formatGroups(groups)
	}
	if decisions, ok := data["decisions"].([]interface{}); ok {
		return f.formatDecisions(decisions)
	}
	if events, ok := data["events"].([]interface{}); ok {
		return f.formatEvents(events)
	}
	if _, ok := data["state"]; ok {
		return f.formatKeyValues(data)
	}
	if _, ok := data["activated"]; ok {
		return f.formatKeyValues(data)
	}
	return f.formatKeyValues(data)
}

func (f *TableFormatter) formatFeatures(features []interface{}) error {
	w := NewPlainTableWriter(os.Stdout)
	w.SetNoHeaders(f.options.NoHeaders)

	headers := []string{"ID", "NAME", "DEFAULT RULE", "GROUPS"}
	if f.options.Format == OutputFormatWide {
		headers = append(headers, "PROVIDES", "CONSUMES", "EXPERIMENTAL")
	}
	w.SetHeaders(headers)

	for _, item := range features {
		feature, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		row := []string{
			str(feature["id"]),
			str(feature["name"]),
			str(feature["default_rule"]),
			joinList(feature["groups"]),
		}
		if f.options.Format == OutputFormatWide {
			row = append(row,
				joinList(feature["provides"]),
				joinList(feature["consumes"]),
				boolStr(feature["experimental"]),
			)
		}
		w.AppendRow(row)
	}

	w.Render()
	return nil
}

func (f *TableFormatter) formatGroups(groups []interface{}) error {
	w := NewPlainTableWriter(os.Stdout)
	w.SetNoHeaders(f.options.NoHeaders)
	w.SetHeaders([]string{"NAME", "REQUIRED", "MEMBERS"})

	for _, item := range groups {
		group, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		w.AppendRow([]string{
			str(group["name"]),
			boolStr(group["required"]),
			joinList(group["members"]),
		})
	}

	w.Render()
	return nil
}

func (f *TableFormatter) formatDecisions(decisions []interface{}) error {
	w := NewPlainTableWriter(os.Stdout)
	w.SetNoHeaders(f.options.NoHeaders)
	w.SetHeaders([]string{"ID", "RULE", "ENABLED", "REASON"})

	for _, item := range decisions {
		decision, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		w.AppendRow([]string{
			str(decision["id"]),
			str(decision["rule"]),
			boolStr(decision["enabled"]),
			str(decision["reason"]),
		})
	}

	w.Render()
	return nil
}

func (f *TableFormatter) formatEvents(events []interface{}) error {
	w := NewPlainTableWriter(os.Stdout)
	w.SetNoHeaders(f.options.NoHeaders)
	w.SetHeaders([]string{"TIMESTAMP", "TYPE", "REASON", "FEATURE", "MESSAGE"})

	for _, item := range events {
		event, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		w.AppendRow([]string{
			str(event["timestamp"]),
			str(event["type"]),
			str(event["reason"]),
			str(event["feature_id"]),
			str(event["message"]),
		})
	}

	w.Render()
	return nil
}

// formatList renders a plain array. Arrays of objects get one column per
// key; arrays of scalars get one row each.
func (f *TableFormatter) formatList(items []interface{}, headers []string) error {
	if len(items) == 0 {
		if !f.options.Quiet {
			fmt.Println("No results")
		}
		return nil
	}

	if _, ok := items[0].(map[string]interface{}); !ok {
		for _, item := range items {
			fmt.Println(str(item))
		}
		return nil
	}

	if headers == nil {
		seen := map[string]bool{}
		for _, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			for key := range obj {
				if !seen[key] {
					seen[key] = true
					headers = append(headers, key)
				}
			}
		}
		sort.Strings(headers)
	}

	w := NewPlainTableWriter(os.Stdout)
	w.SetNoHeaders(f.options.NoHeaders)
	w.SetHeaders(headers)
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		row := make([]string, len(headers))
		for i, key := range headers {
			row[i] = str(obj[key])
		}
		w.AppendRow(row)
	}
	w.Render()
	return nil
}

// formatKeyValues renders a single object as a FIELD/VALUE table in sorted
// key order.
func (f *TableFormatter) formatKeyValues(data map[string]interface{}) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := NewPlainTableWriter(os.Stdout)
	w.SetNoHeaders(f.options.NoHeaders)
	w.SetHeaders([]string{"FIELD", "VALUE"})
	for _, key := range keys {
		w.AppendRow([]string{key, str(data[key])})
	}
	w.Render()
	return nil
}

func str(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []interface{}:
		return joinList(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func joinList(v interface{}) string {
	list, ok := v.([]interface{})
	if !ok {
		return str(v)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, str(item))
	}
	return strings.Join(parts, ",")
}

func boolStr(v interface{}) string {
	if b, ok := v.(bool); ok && b {
		return "true"
	}
	return "false"
}

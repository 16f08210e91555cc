package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"featgate/internal/agent/commands"

	"github.com/chzyer/readline"
	"github.com/mark3labs/mcp-go/mcp"
)

// promptPrefixUnicode uses a mathematical bold "f" for featgate branding in
// the REPL prompt. Used when the terminal supports unicode.
const promptPrefixUnicode = "𝗳"

// promptPrefixASCII is the fallback prefix for terminals without unicode support.
const promptPrefixASCII = "f"

// promptChevronUnicode is the guillemet separator used in the prompt.
const promptChevronUnicode = "»"

// promptChevronASCII is the fallback chevron for terminals without unicode support.
const promptChevronASCII = ">"

// commandExecutionTimeout is the timeout for individual REPL command
// execution. Five minutes leaves room for slow reconciles while still
// providing a safety net against hung calls.
const commandExecutionTimeout = 5 * time.Minute

// REPL is the interactive shell over the control endpoint. It wraps the
// shared Client with readline, a command registry with aliases and tab
// completion, persistent history, and (on SSE) live notification display.
type REPL struct {
	client           *Client
	logger           *Logger
	rl               *readline.Instance
	notificationChan chan mcp.JSONRPCNotification
	stopChan         chan struct{}
	wg               sync.WaitGroup
	commandRegistry  *commands.Registry
	useUnicode       bool
	mu               sync.RWMutex
}

// NewREPL creates a REPL around an already constructed client. The command
// set is registered immediately; the client is connected by Run.
//
// Example:
//
//	client := agent.NewClient("http://localhost:8090/sse", logger, agent.TransportSSE)
//	repl := agent.NewREPL(client, logger)
//	if err := repl.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
func NewREPL(client *Client, logger *Logger) *REPL {
	repl := &REPL{
		client:           client,
		logger:           logger,
		notificationChan: make(chan mcp.JSONRPCNotification, 10),
		stopChan:         make(chan struct{}),
		commandRegistry:  commands.NewRegistry(),
		useUnicode:       detectUnicodeSupport(),
	}

	repl.registerCommands()

	return repl
}

// detectUnicodeSupport checks if the terminal likely supports unicode.
// Returns false for dumb terminals or when there is no terminal at all.
func detectUnicodeSupport() bool {
	term := os.Getenv("TERM")
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	if term == "" || term == "dumb" {
		return false
	}

	for _, v := range []string{lang, lcAll} {
		if strings.Contains(strings.ToLower(v), "utf-8") || strings.Contains(strings.ToLower(v), "utf8") {
			return true
		}
	}

	// vt100 is intentionally excluded, it predates unicode
	unicodeTerminals := []string{"xterm", "screen", "tmux", "alacritty", "kitty", "iterm"}
	termLower := strings.ToLower(term)
	for _, ut := range unicodeTerminals {
		if strings.Contains(termLower, ut) {
			return true
		}
	}

	return true
}

// buildPrompt creates the REPL prompt, e.g. "𝗳 »" or the ASCII fallback "f >".
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	useUnicode := r.useUnicode
	r.mu.RUnlock()

	prefix := promptPrefixASCII
	chevron := promptChevronASCII
	if useUnicode {
		prefix = promptPrefixUnicode
		chevron = promptChevronUnicode
	}

	return prefix + " " + chevron + " "
}

// registerCommands registers the complete command set of the REPL with
// aliases and completion handlers.
func (r *REPL) registerCommands() {
	transport := &transportAdapter{client: r.client}

	r.commandRegistry.Register("help", commands.NewHelpCommand(r.client, r.logger, transport, r.commandRegistry))
	r.commandRegistry.Register("list", commands.NewListCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("get", commands.NewGetCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("describe", commands.NewDescribeCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("resolve", commands.NewResolveCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("reconcile", commands.NewReconcileCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("serialize", commands.NewSerializeCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("status", commands.NewStatusCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("rule", commands.NewRuleCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("groups", commands.NewGroupsCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("events", commands.NewEventsCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("call", commands.NewCallCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("exit", commands.NewExitCommand(r.client, r.logger, transport))
}

// transportAdapter adapts Client to the commands.TransportInterface so
// commands can check transport capabilities without depending on Client.
type transportAdapter struct {
	client *Client
}

// SupportsNotifications returns whether the underlying transport delivers
// server notifications.
func (t *transportAdapter) SupportsNotifications() bool {
	return t.client.SupportsNotifications()
}

// executeCommand parses one input line and runs the matching command with a
// timeout context. "?" resolves to help; unknown commands return an error
// the loop displays.
func (r *REPL) executeCommand(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	commandName := strings.ToLower(parts[0])
	args := parts[1:]

	if commandName == "?" {
		commandName = "help"
	}

	command, exists := r.commandRegistry.Get(commandName)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	// Separate context so agent lifecycle events do not cancel a running
	// tool call mid-flight.
	commandCtx, commandCancel := context.WithTimeout(context.Background(), commandExecutionTimeout)
	defer commandCancel()

	return command.Execute(commandCtx, args)
}

// Run enters the main interaction loop. It wires notification routing for
// transports that support it, configures readline with history and tab
// completion, and processes commands until context cancellation, Ctrl+D, or
// an explicit exit.
func (r *REPL) Run(ctx context.Context) error {
	if r.client.SupportsNotifications() && r.client.NotificationChan != nil {
		go func() {
			for notification := range r.client.NotificationChan {
				select {
				case r.notificationChan <- notification:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	completer := r.createCompleter()
	historyFile := filepath.Join(os.TempDir(), ".featgate_agent_history")

	config := &readline.Config{
		Prompt:          r.buildPrompt(),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	if r.client.SupportsNotifications() {
		r.wg.Add(1)
		go r.notificationListener(ctx)
		r.logger.Info("featgate REPL started with notification support. Type 'help' for available commands. Use TAB for completion.")
	} else {
		r.logger.Info("featgate REPL started. Type 'help' for available commands. Use TAB for completion.")
		r.logger.Info("Note: Real-time notifications are not supported with %s transport.", r.client.transport)
	}
	fmt.Println()

	for {
		select {
		case <-ctx.Done():
			if r.client.SupportsNotifications() {
				close(r.stopChan)
				r.wg.Wait()
			}
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			if r.client.SupportsNotifications() {
				close(r.stopChan)
				r.wg.Wait()
			}
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := r.executeCommand(input); err != nil {
			if err.Error() == "exit" {
				if r.client.SupportsNotifications() {
					close(r.stopChan)
					r.wg.Wait()
				}
				r.logger.Info("Goodbye!")
				return nil
			}
			r.logger.Error("Error: %v", err)
		}

		fmt.Println()
	}
}

// notificationListener displays server notifications without corrupting the
// readline prompt and refreshes tab completion when the tool list changes.
// Only started for transports that support notifications.
func (r *REPL) notificationListener(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case notification := <-r.notificationChan:
			if r.rl != nil {
				r.rl.Stdout().Write([]byte("\r\033[K"))
			}

			if err := r.client.handleNotification(ctx, notification); err != nil {
				r.logger.Error("Failed to handle notification: %v", err)
			}

			if notification.Method == "notifications/tools/list_changed" && r.rl != nil {
				r.rl.Config.AutoComplete = r.createCompleter()
			}

			if r.rl != nil {
				r.rl.Refresh()
			}
		}
	}
}

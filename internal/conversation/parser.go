// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// UsageError reports a known command with malformed arguments.
type UsageError struct {
	Command string
	Usage   string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Usage)
}

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log   *logger.Logger
	rules []rule
	// usage maps every command keyword (and alias) to its usage line.
	usage map[string]string
}

type rule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// Command documents one REPL command for help output.
type Command struct {
	Keywords []string
	Usage    string
	Summary  string
}

// Commands lists the REPL grammar in help order.
var Commands = []Command{
	{[]string{"help", "h", "?"}, "help", "show this list"},
	{[]string{"show", "recipe"}, "show", "print the current recipe"},
	{[]string{"fuel"}, "fuel gasoline|diesel", "switch fuel type (clears results and pins)"},
	{[]string{"components", "catalog"}, "components", "list available components (retries a failed load)"},
	{[]string{"add"}, "add [name]", "add a component at 0%"},
	{[]string{"remove", "rm"}, "remove <n>", "remove component n"},
	{[]string{"name", "rename"}, "name <n> <component>", "change component n"},
	{[]string{"set"}, "set <n> <pct>", "set the share of component n"},
	{[]string{"normalize", "norm"}, "normalize", "scale shares to 100%"},
	{[]string{"predict", "run"}, "predict", "predict blend properties"},
	{[]string{"details"}, "details", "per-component properties of the last result"},
	{[]string{"pin"}, "pin", "pin the last result for comparison"},
	{[]string{"unpin"}, "unpin <n>", "unpin blend n"},
	{[]string{"pinned", "pins"}, "pinned", "list pinned blends"},
	{[]string{"compare", "cmp"}, "compare", "compare pinned blends"},
	{[]string{"clear"}, "clear", "unpin everything"},
	{[]string{"export"}, "export [report|compare]", "write a PDF of the result or comparison"},
	{[]string{"history"}, "history", "list archived blends"},
	{[]string{"save"}, "save <file>", "write the recipe to a YAML file"},
	{[]string{"load"}, "load <file>", "read a recipe from a YAML file"},
	{[]string{"quit", "exit", "q"}, "quit", "leave"},
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log, usage: make(map[string]string)}
	for _, c := range Commands {
		for _, k := range c.Keywords {
			p.usage[k] = c.Usage
		}
	}
	p.rules = []rule{
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(show|recipe)$`), domain.IntentShow},
		{regexp.MustCompile(`(?i)^fuel\s+(gasoline|diesel)$`), domain.IntentSwitchFuel},
		{regexp.MustCompile(`(?i)^(?:components|catalog)$`), domain.IntentListComponents},
		{regexp.MustCompile(`(?i)^add(?:\s+(.+))?$`), domain.IntentAddComponent},
		{regexp.MustCompile(`(?i)^(?:remove|rm)\s+(\d+)$`), domain.IntentRemoveComponent},
		{regexp.MustCompile(`(?i)^(?:name|rename)\s+(\d+)\s+(.+)$`), domain.IntentRenameComponent},
		{regexp.MustCompile(`(?i)^set\s+(\d+)\s+(-?\d+(?:\.\d+)?|-?\.\d+)\s*%?$`), domain.IntentSetPercentage},
		{regexp.MustCompile(`(?i)^(?:normalize|norm)$`), domain.IntentNormalize},
		{regexp.MustCompile(`(?i)^(?:predict|run)$`), domain.IntentPredict},
		{regexp.MustCompile(`(?i)^details$`), domain.IntentDetails},
		{regexp.MustCompile(`(?i)^pin$`), domain.IntentPin},
		{regexp.MustCompile(`(?i)^unpin\s+(\d+)$`), domain.IntentUnpin},
		{regexp.MustCompile(`(?i)^(?:pinned|pins)$`), domain.IntentListPinned},
		{regexp.MustCompile(`(?i)^(?:compare|cmp)$`), domain.IntentCompare},
		{regexp.MustCompile(`(?i)^clear$`), domain.IntentClearPinned},
		{regexp.MustCompile(`(?i)^export(?:\s+(report|compare))?$`), domain.IntentExport},
		{regexp.MustCompile(`(?i)^history$`), domain.IntentHistory},
		{regexp.MustCompile(`(?i)^save\s+(.+)$`), domain.IntentSave},
		{regexp.MustCompile(`(?i)^load\s+(.+)$`), domain.IntentLoad},
	}
	return p
}

// Parse converts user input into an intent. A known command with bad
// arguments yields a *UsageError.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, r := range p.rules {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", r.intent)
		return build(r.intent, m), nil
	}

	keyword := strings.ToLower(strings.Fields(trimmed)[0])
	if usage, ok := p.usage[keyword]; ok {
		return nil, &UsageError{Command: keyword, Usage: usage}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func build(t domain.IntentType, m []string) *domain.Intent {
	in := &domain.Intent{Type: t}
	switch t {
	case domain.IntentSwitchFuel:
		in.Payload = strings.ToLower(m[1])
	case domain.IntentAddComponent, domain.IntentSave, domain.IntentLoad:
		in.Payload = strings.TrimSpace(m[1])
	case domain.IntentRemoveComponent, domain.IntentUnpin:
		in.Slot, _ = strconv.Atoi(m[1])
	case domain.IntentRenameComponent:
		in.Slot, _ = strconv.Atoi(m[1])
		in.Payload = strings.TrimSpace(m[2])
	case domain.IntentSetPercentage:
		in.Slot, _ = strconv.Atoi(m[1])
		in.Value, _ = strconv.ParseFloat(m[2], 64)
	case domain.IntentExport:
		in.Payload = strings.ToLower(m[1])
		if in.Payload == "" {
			in.Payload = "report"
		}
	}
	return in
}

// HelpText renders the command list.
func HelpText() []string {
	width := 0
	for _, c := range Commands {
		width = max(width, len(c.Usage))
	}
	lines := make([]string, 0, len(Commands))
	for _, c := range Commands {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, c.Usage, c.Summary))
	}
	return lines
}

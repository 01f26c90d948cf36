package keymap

import (
	"fmt"
	"strings"
)

// GenerateHelp lists the bindings of the given contexts, merging keys that
// share a command, e.g. "j / down  Move down".
func (r *Registry) GenerateHelp(contexts ...Context) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for _, ctx := range contexts {
		bindings := r.bindings[ctx]
		if len(bindings) == 0 {
			continue
		}

		var order []Command
		keys := make(map[Command][]string)
		desc := make(map[Command]string)
		for _, b := range bindings {
			if _, ok := keys[b.Command]; !ok {
				order = append(order, b.Command)
				desc[b.Command] = b.Description
			}
			keys[b.Command] = append(keys[b.Command], b.Key)
		}

		sb.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(string(ctx))))
		for _, cmd := range order {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", strings.Join(keys[cmd], " / "), desc[cmd]))
		}
	}
	return sb.String()
}

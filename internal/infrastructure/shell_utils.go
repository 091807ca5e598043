package infrastructure

import "strings"

const shellSpecial = " \t'\"$`\\!*?[](){}|;<>&~#%\n\r"

// shellQuote quotes a single argument for safe display in a shell command
// line. Display only; exec.Command passes arguments without a shell.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecial) {
		return s
	}

	var b strings.Builder
	b.WriteString("'")
	for _, r := range s {
		if r == '\'' {
			b.WriteString(`'"'"'`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteString("'")
	return b.String()
}

// ShellJoin renders a binary and its arguments as a copy-pasteable command
// line for logging
func ShellJoin(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(binary))
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

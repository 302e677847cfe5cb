package mockbackend

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rhuss/codepad/pkg/api"
)

// Outcome classifies a simulated run the way a real runner would.
type Outcome string

const (
	OutcomeOK           Outcome = "OK"
	OutcomeRuntimeError Outcome = "RE"
	OutcomeTimeLimit    Outcome = "TLE"
	OutcomeMemoryLimit  Outcome = "MLE"
)

// Run is the result of simulating one program.
type Run struct {
	Outcome         Outcome
	Stdout          string
	Stderr          string
	ExecutionTimeMs int64
	MemoryUsedKB    int64
}

// Result converts a run into the execution contract: stdout on success,
// stderr flagged as an error otherwise.
func (r Run) Result() api.ExecutionResult {
	t, m := r.ExecutionTimeMs, r.MemoryUsedKB
	res := api.ExecutionResult{
		Output:          r.Stdout,
		ExecutionTimeMs: &t,
		MemoryUsedKB:    &m,
	}
	if r.Outcome != OutcomeOK {
		res.Output = r.Stderr
		res.Error = true
	}
	return res
}

// simError is a simulated exception.
type simError struct {
	kind string
	msg  string
}

func (e *simError) Error() string {
	if e.msg == "" {
		return e.kind
	}
	return e.kind + ": " + e.msg
}

var (
	pyPrint     = regexp.MustCompile(`^print\((.*)\)$`)
	pyRaise     = regexp.MustCompile(`^raise\s+(\w+)(?:\((.*)\))?$`)
	pyAssign    = regexp.MustCompile(`^([A-Za-z_]\w*)\s*=\s*(.+)$`)
	pyLoop      = regexp.MustCompile(`^while\s+(True|1)\s*:`)
	pyConvert   = regexp.MustCompile(`^(int|str|float)\((.*)\)$`)
	pyInput     = regexp.MustCompile(`^input\((.*)\)(\.strip\(\))?$`)
	jsLog       = regexp.MustCompile(`^console\.(log|error)\((.*)\);?$`)
	jsThrow     = regexp.MustCompile(`^throw\s+new\s+(\w+)\((.*)\);?$`)
	jsAssign    = regexp.MustCompile(`^(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(.+?);?$`)
	jsLoop      = regexp.MustCompile(`^(while\s*\(\s*true\s*\)|for\s*\(\s*;\s*;\s*\))`)
	jsStdin     = regexp.MustCompile(`readFileSync\(\s*(0|["']/dev/stdin["'])`)
	identifier  = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	numberLit   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	interpolate = regexp.MustCompile(`\{([A-Za-z_]\w*)\}`)
	templateVar = regexp.MustCompile(`\$\{\s*([A-Za-z_$][\w$]*)\s*\}`)
)

// Simulate produces a deterministic result for a program without running it.
//
// Only top-level statements are recognised. Python: print, assignment from
// literals, input() and int()/str()/float(), raise, and an unconditional
// while loop (reported as a time limit). JavaScript: console.log/error,
// const/let/var from literals or fs.readFileSync(0), throw new X(...) and
// while(true). Everything else is skipped.
func Simulate(lang api.Language, code, input string) Run {
	s := &simulator{
		vars:  make(map[string]string),
		stdin: splitStdin(input),
	}
	switch lang {
	case api.LanguagePython:
		s.memory = 8 << 10
		s.runPython(code)
	case api.LanguageJavaScript:
		s.memory = 32 << 10
		s.runJavaScript(code)
	default:
		s.run.Outcome = OutcomeRuntimeError
		s.run.Stderr = fmt.Sprintf("unsupported language %q", lang)
	}
	s.run.Stdout = s.out.String()
	s.run.ExecutionTimeMs = 10 + int64(s.statements)
	s.run.MemoryUsedKB = s.memory
	return s.run
}

type simulator struct {
	vars       map[string]string
	stdin      []string
	rawStdin   string
	out        strings.Builder
	run        Run
	statements int
	memory     int64
}

func splitStdin(input string) []string {
	if input == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(input, "\n"), "\n")
}

func (s *simulator) runPython(code string) {
	for i, line := range strings.Split(code, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		stmt := strings.TrimSpace(stripPyComment(line))
		if stmt == "" {
			continue
		}
		s.statements++

		var err error
		switch {
		case pyLoop.MatchString(stmt):
			s.run.Outcome = OutcomeTimeLimit
			s.run.Stderr = "Time Limit Exceeded"
			return
		case pyPrint.MatchString(stmt):
			args := pyPrint.FindStringSubmatch(stmt)[1]
			var vals []string
			vals, err = s.evalArgs(args, s.evalPython)
			if err == nil {
				s.out.WriteString(strings.Join(vals, " ") + "\n")
			}
		case pyRaise.MatchString(stmt):
			m := pyRaise.FindStringSubmatch(stmt)
			msg := ""
			if m[2] != "" {
				msg, err = s.evalPython(m[2])
			}
			if err == nil {
				err = &simError{kind: m[1], msg: msg}
			}
		case pyAssign.MatchString(stmt):
			m := pyAssign.FindStringSubmatch(stmt)
			var v string
			v, err = s.evalPython(m[2])
			if err == nil {
				s.vars[m[1]] = v
			}
		}

		if err != nil {
			s.pythonFailure(i+1, stmt, err)
			return
		}
	}
}

func (s *simulator) pythonFailure(line int, stmt string, err error) {
	se, ok := err.(*simError)
	if !ok {
		se = &simError{kind: "RuntimeError", msg: err.Error()}
	}
	s.run.Outcome = OutcomeRuntimeError
	if se.kind == "MemoryError" {
		s.run.Outcome = OutcomeMemoryLimit
	}
	s.run.Stderr = fmt.Sprintf("Traceback (most recent call last):\n  File \"main.py\", line %d, in <module>\n    %s\n%s\n", line, stmt, se)
}

func (s *simulator) evalPython(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return "", nil
	case pyInput.MatchString(expr):
		if prompt := pyInput.FindStringSubmatch(expr)[1]; prompt != "" {
			p, err := s.evalPython(prompt)
			if err != nil {
				return "", err
			}
			s.out.WriteString(p)
		}
		if len(s.stdin) == 0 {
			return "", &simError{kind: "EOFError", msg: "EOF when reading a line"}
		}
		line := s.stdin[0]
		s.stdin = s.stdin[1:]
		if strings.HasSuffix(expr, ".strip()") {
			line = strings.TrimSpace(line)
		}
		return line, nil
	case pyConvert.MatchString(expr):
		m := pyConvert.FindStringSubmatch(expr)
		v, err := s.evalPython(m[2])
		if err != nil {
			return "", err
		}
		switch m[1] {
		case "int":
			n, convErr := strconv.Atoi(strings.TrimSpace(v))
			if convErr != nil {
				return "", &simError{kind: "ValueError", msg: fmt.Sprintf("invalid literal for int() with base 10: '%s'", v)}
			}
			return strconv.Itoa(n), nil
		case "float":
			f, convErr := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if convErr != nil {
				return "", &simError{kind: "ValueError", msg: fmt.Sprintf("could not convert string to float: '%s'", v)}
			}
			return strconv.FormatFloat(f, 'f', -1, 64), nil
		}
		return v, nil
	case strings.HasPrefix(expr, `f"`) || strings.HasPrefix(expr, `f'`):
		body, ok := unquote(expr[1:])
		if !ok {
			return expr, nil
		}
		var err error
		out := interpolate.ReplaceAllStringFunc(body, func(m string) string {
			name := m[1 : len(m)-1]
			v, found := s.vars[name]
			if !found && err == nil {
				err = &simError{kind: "NameError", msg: fmt.Sprintf("name '%s' is not defined", name)}
			}
			return v
		})
		return out, err
	case isQuoted(expr):
		v, _ := unquote(expr)
		return v, nil
	case numberLit.MatchString(expr):
		return expr, nil
	case expr == "True" || expr == "False" || expr == "None":
		return expr, nil
	case identifier.MatchString(expr):
		v, ok := s.vars[expr]
		if !ok {
			return "", &simError{kind: "NameError", msg: fmt.Sprintf("name '%s' is not defined", expr)}
		}
		return v, nil
	default:
		return expr, nil
	}
}

func (s *simulator) runJavaScript(code string) {
	s.rawStdin = strings.Join(s.stdin, "\n")
	for i, line := range strings.Split(code, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		stmt := strings.TrimSpace(line)
		if stmt == "" || strings.HasPrefix(stmt, "//") {
			continue
		}
		s.statements++

		var err error
		switch {
		case jsLoop.MatchString(stmt):
			s.run.Outcome = OutcomeTimeLimit
			s.run.Stderr = "Time Limit Exceeded"
			return
		case jsLog.MatchString(stmt):
			var vals []string
			vals, err = s.evalArgs(jsLog.FindStringSubmatch(stmt)[2], s.evalJavaScript)
			if err == nil {
				s.out.WriteString(strings.Join(vals, " ") + "\n")
			}
		case jsThrow.MatchString(stmt):
			m := jsThrow.FindStringSubmatch(stmt)
			var msg string
			msg, err = s.evalJavaScript(m[2])
			if err == nil {
				err = &simError{kind: m[1], msg: msg}
			}
		case jsAssign.MatchString(stmt):
			m := jsAssign.FindStringSubmatch(stmt)
			var v string
			v, err = s.evalJavaScript(m[2])
			if err == nil {
				s.vars[m[1]] = v
			}
		}

		if err != nil {
			se, ok := err.(*simError)
			if !ok {
				se = &simError{kind: "Error", msg: err.Error()}
			}
			s.run.Outcome = OutcomeRuntimeError
			if se.kind == "RangeError" && strings.Contains(se.msg, "heap") {
				s.run.Outcome = OutcomeMemoryLimit
			}
			s.run.Stderr = fmt.Sprintf("main.js:%d\n%s\n\nUncaught %s\n", i+1, stmt, se)
			return
		}
	}
}

func (s *simulator) evalJavaScript(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return "", nil
	case jsStdin.MatchString(expr):
		v := s.rawStdin
		if strings.HasSuffix(expr, ".trim()") {
			v = strings.TrimSpace(v)
		}
		return v, nil
	case strings.HasPrefix(expr, "`") && strings.HasSuffix(expr, "`") && len(expr) >= 2:
		var err error
		out := templateVar.ReplaceAllStringFunc(expr[1:len(expr)-1], func(m string) string {
			name := templateVar.FindStringSubmatch(m)[1]
			v, found := s.vars[name]
			if !found && err == nil {
				err = &simError{kind: "ReferenceError", msg: name + " is not defined"}
			}
			return v
		})
		return out, err
	case isQuoted(expr):
		v, _ := unquote(expr)
		return v, nil
	case numberLit.MatchString(expr):
		return expr, nil
	case expr == "true" || expr == "false" || expr == "null" || expr == "undefined":
		return expr, nil
	case identifier.MatchString(expr):
		v, ok := s.vars[expr]
		if !ok {
			return "", &simError{kind: "ReferenceError", msg: expr + " is not defined"}
		}
		return v, nil
	default:
		return expr, nil
	}
}

func (s *simulator) evalArgs(args string, eval func(string) (string, error)) ([]string, error) {
	parts := splitArgs(args)
	vals := make([]string, 0, len(parts))
	for _, p := range parts {
		v, err := eval(p)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// splitArgs splits on commas outside quotes and brackets.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
		case r == '"' || r == '\'' || r == '`':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func stripPyComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '"' || q == '\'') && s[len(s)-1] == q
}

func unquote(s string) (string, bool) {
	if !isQuoted(s) {
		return s, false
	}
	body := s[1 : len(s)-1]
	if s[0] == '\'' {
		body = strings.ReplaceAll(body, `"`, `\"`)
		body = strings.ReplaceAll(body, `\'`, `'`)
	}
	v, err := strconv.Unquote(`"` + body + `"`)
	if err != nil {
		return s[1 : len(s)-1], true
	}
	return v, true
}

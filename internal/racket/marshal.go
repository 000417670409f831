package racket

import (
	"fmt"
	"strings"
)

// Op names a high-level operation the front-end can request.
type Op int

const (
	// OpEvaluate evaluates a form in a module.
	OpEvaluate Op = iota
	// OpCompile compiles a form; on the wire it is the same request
	// as OpEvaluate, the remote side decides what "compile" means.
	OpCompile
	// OpLoadFile loads a file into the running REPL.
	OpLoadFile
	// OpCompileFile compiles a file, which for Racket is a load.
	OpCompileFile
	// OpEnterModule switches the REPL's current module.
	OpEnterModule
	// OpImport requires a module into the current namespace.
	OpImport
	// OpExit shuts the REPL down.
	OpExit
	// OpNoValues tells the REPL the last evaluation produced no values.
	OpNoValues
	// OpGeneric dispatches any other operation by name through the
	// geiser: procedure table.
	OpGeneric
)

// Operation is a request to be marshalled into a REPL command line.
type Operation struct {
	Op   Op
	Name string   // operation name, for OpGeneric
	Args []string // free-text arguments, sent verbatim in order
}

// Marshal turns an operation into the exact command line to send to
// the REPL. It never fails: missing arguments degrade to the false
// token so the positional layout of the wire command is preserved,
// and the remote reader is left to reject anything malformed. No
// escaping is applied to arguments, matching the permissive reader on
// the other end.
func Marshal(op Operation, src Source) string {
	switch op.Op {
	case OpEvaluate, OpCompile:
		return evalCommand(op.Args, src)
	case OpLoadFile, OpCompileFile:
		return ", geiser-load " + ResolveModule(src).LoadForm()
	case OpEnterModule:
		return EnterCommand(ResolveModule(src))
	case OpImport:
		if cmd, ok := ImportCommand(firstArg(op.Args)); ok {
			return cmd
		}
		// Absent module degrades to the placeholder, per the
		// no-failure policy. Callers that want "send nothing"
		// use ImportCommand directly.
		return fmt.Sprintf("(require %s)", falseToken)
	case OpExit:
		return "(exit 0)"
	case OpNoValues:
		return ", geiser-no-values"
	default:
		return genericCommand(op.Name, op.Args)
	}
}

// evalCommand builds the ",geiser-eval" request. The first argument
// is the module, the second wire token is the dialect rediscovered
// from the source snapshot, everything else rides along verbatim.
func evalCommand(args []string, src Source) string {
	module := falseToken
	rest := args
	if len(args) > 0 {
		module = args[0]
		rest = args[1:]
	}
	parts := append([]string{module, Language(src)}, rest...)
	return ", geiser-eval " + strings.Join(parts, " ")
}

// genericCommand is the catch-all dispatch path. New operations reach
// the REPL through here without the marshaller growing a case for
// them.
func genericCommand(name string, args []string) string {
	return fmt.Sprintf(", apply geiser:%s (%s)", name, strings.Join(args, " "))
}

// EnterCommand builds the ",enter" command for a resolved module.
// Paths and submodule lists are printed in a form that round-trips
// through the remote reader; bare names go through as-is.
func EnterCommand(ref ModuleRef) string {
	if ref.IsZero() {
		return ",enter " + falseToken
	}
	switch ref.Kind {
	case ModulePath:
		return fmt.Sprintf(",enter %q", ref.Path)
	case ModuleSubmodule:
		return fmt.Sprintf(",enter (submod %q %s)", ref.Path, ref.Name)
	default:
		return ",enter " + ref.Name
	}
}

// ImportCommand builds the require form for a module name. An empty
// name produces no command at all: ok is false and there is nothing
// to send.
func ImportCommand(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	return fmt.Sprintf("(require %s)", name), true
}

// HelpCommand builds the ",help" request for an identifier within a
// module.
func HelpCommand(identifier, module string) string {
	if module == "" {
		module = falseToken
	}
	return fmt.Sprintf(",help %s %s", identifier, module)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

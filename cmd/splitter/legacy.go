package main

// legacyVerbs переводит прежние флаги-команды в глаголы.
var legacyVerbs = map[string]string{
	"--split":      "split",
	"--split-size": "split-size",
	"--join":       "join",
	"--help":       "help",
}

// legacyArgs заменяет первый аргумент вида "--split" соответствующей командой.
func legacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	verb, ok := legacyVerbs[args[0]]
	if !ok {
		return args
	}

	out := make([]string, 0, len(args))
	out = append(out, verb)

	return append(out, args[1:]...)
}

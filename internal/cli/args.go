package cli

// legacyFlags maps single-dash long flags, as accepted by earlier
// releases of the tool, to their pflag spelling. pflag would otherwise
// read "-ipv6" as the shorthand cluster -i -p -v -6.
var legacyFlags = map[string]string{
	"-ipv6": "--ipv6",
	"-json": "--json",
}

// NormalizeArgs rewrites legacy single-dash long flags in args. Arguments
// after a "--" terminator are left untouched.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if repl, ok := legacyFlags[arg]; ok {
			arg = repl
		}
		out = append(out, arg)
	}
	return out
}

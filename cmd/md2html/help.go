package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Generate the site from the content directory")
	fmt.Fprintln(w, "  convert     Convert one markdown file to HTML")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Wipe the output directory, copy the static directory into it and")
	fmt.Fprintln(w, "generate one HTML page per markdown file of the content directory.")
	fmt.Fprintln(w, "content/blog/post.md becomes public/blog/post.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --content <dir>       Markdown sources (default: content)")
	fmt.Fprintln(w, "      --static <dir>        Static files; embedded stylesheet if missing (default: static)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, wiped first (default: public)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --engine <s>          Engine: native, goldmark")
	fmt.Fprintln(w, "      --empty <s>           Empty documents: allow, reject")
	fmt.Fprintln(w, "      --rewrite-links       Point relative .md links at generated pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --assets <dir>        Template and stylesheet overrides")
	fmt.Fprintln(w, "      --template <name>     Page template name (default: default)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also export each page to PDF (requires Chrome)")
	fmt.Fprintln(w, "      --pdf-timeout <d>     Timeout per page (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: md2html)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every page and timing")
	fmt.Fprintln(w)
	printEnvironment(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one markdown file to an HTML fragment. Use - to read stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --page                Wrap the fragment in the page template")
	fmt.Fprintln(w, "      --inline-style        Full page with the stylesheet inlined")
	fmt.Fprintln(w, "      --style <name>        Stylesheet for --inline-style (default: index)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --engine <s>          Engine: native, goldmark")
	fmt.Fprintln(w, "      --empty <s>           Empty documents: allow, reject")
	fmt.Fprintln(w, "      --rewrite-links       Point relative .md links at .html pages")
	fmt.Fprintln(w, "      --assets <dir>        Template and stylesheet overrides")
	fmt.Fprintln(w, "      --template <name>     Page template name (default: default)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: md2html)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show details")
}

// printEnvironment lists the recognized environment variables.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2HTML_CONFIG, MD2HTML_CONTENT_DIR, MD2HTML_STATIC_DIR, MD2HTML_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MD2HTML_ASSETS_DIR, MD2HTML_ENGINE, MD2HTML_WORKERS, MD2HTML_PDF_TIMEOUT")
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

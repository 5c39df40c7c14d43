package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/live-labs/sealbox/cmd"
)

func main() {
	// Intercept SIGINT/SIGTERM so an interrupt during a no-echo prompt
	// cannot kill the process before terminal state is restored
	_, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "get":
		runGet(os.Args[2:])
	case "set":
		runSet(os.Args[2:])
	case "rm":
		runRm(os.Args[2:])
	case "ls":
		runLs(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "export-key":
		runExportKey(os.Args[2:])
	case "import-key":
		runImportKey(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	label := fs.String("l", "", "Label (default: $SEALBOX_LABEL or current user)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Get(cmd.ResolveLabel(*label), cmd.ResolveName(fs.Args()))
}

func runSet(args []string) {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	label := fs.String("l", "", "Label (default: $SEALBOX_LABEL or current user)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Set(cmd.ResolveLabel(*label), cmd.ResolveName(fs.Args()))
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	label := fs.String("l", "", "Label (default: $SEALBOX_LABEL or current user)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Remove(cmd.ResolveLabel(*label), fs.Args())
}

func runLs(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	label := fs.String("l", "", "Label (empty lists all labels)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Ls(*label)
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status()
}

func runExportKey(args []string) {
	fs := flag.NewFlagSet("export-key", flag.ExitOnError)
	label := fs.String("l", "", "Label (default: $SEALBOX_LABEL or current user)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(fs.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealbox export-key [-l label] <file>")
		os.Exit(1)
	}

	cmd.ExportKey(cmd.ResolveLabel(*label), fs.Arg(0))
}

func runImportKey(args []string) {
	fs := flag.NewFlagSet("import-key", flag.ExitOnError)
	label := fs.String("l", "", "Label (default: the envelope's label)")
	force := fs.Bool("force", false, "Overwrite an existing key")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(fs.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealbox import-key [-l label] [--force] <file>")
		os.Exit(1)
	}

	cmd.ImportKey(*label, fs.Arg(0), *force)
}

func runKeyring(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealbox keyring <save|delete|status> [-l label]")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	label := fs.String("l", "", "Label (default: $SEALBOX_LABEL or current user)")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave(cmd.ResolveLabel(*label))
	case "delete":
		cmd.KeyringDelete(cmd.ResolveLabel(*label))
	case "status":
		cmd.KeyringStatus(cmd.ResolveLabel(*label))
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealbox completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("sealbox - per-label encrypted secret storage")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sealbox <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  get         Decrypt and print a secret (prompts to create it if missing)")
	fmt.Println("  set         Store a secret (interactive, with confirmation)")
	fmt.Println("  rm          Remove secrets")
	fmt.Println("  ls          List labels or secrets under a label")
	fmt.Println("  status      Show vault location and per-label summary")
	fmt.Println("  export-key  Export a label's key to a passphrase-protected file")
	fmt.Println("  import-key  Import a label's key from an exported file")
	fmt.Println("  keyring     Mirror a label's key in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  sealbox set -l myapp db_password   # Store a secret interactively")
	fmt.Println("  sealbox get -l myapp db_password   # Print it (creates on first use)")
	fmt.Println("  sealbox get                        # Default label and name 'password'")
	fmt.Println("  PGPASSWORD=$(sealbox get -l myapp db_password) psql ...")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SEALBOX_ROOT    Vault directory (default ~/.sealbox)")
	fmt.Println("  SEALBOX_LABEL   Default label (default: current user)")
	fmt.Println("  SEALBOX_SECRET  Secret value for non-interactive set")
	fmt.Println()
	fmt.Println("Use 'sealbox help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "get":
		fmt.Println("sealbox get [-l label] [name]")
		fmt.Println()
		fmt.Println("Decrypts a secret and prints it to stdout.")
		fmt.Println("Prompts and diagnostics go to stderr, so output can be piped safely.")
		fmt.Println("If the secret does not exist yet, prompts to enter it first.")
		fmt.Println("The label's key is generated automatically on first use.")
		fmt.Println()
		fmt.Println("Defaults: label from $SEALBOX_LABEL or the current user,")
		fmt.Println("name 'password'.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealbox get -l myapp db_password")
		fmt.Println("  sealbox get api_token              # default label")
	case "set":
		fmt.Println("sealbox set [-l label] [name]")
		fmt.Println()
		fmt.Println("Stores a secret, overwriting any previous value.")
		fmt.Println("Prompts twice with echo disabled; entries must match")
		fmt.Println("(up to 3 attempts). Set SEALBOX_SECRET to skip the prompt.")
		fmt.Println("Every write uses a fresh random IV and replaces the file atomically.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealbox set -l myapp db_password")
		fmt.Println("  SEALBOX_SECRET=hunter2 sealbox set -l ci deploy_token")
	case "rm":
		fmt.Println("sealbox rm [-l label] <name> [name...]")
		fmt.Println()
		fmt.Println("Removes secrets under a label. The label's key is kept.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  sealbox rm -l myapp db_password")
	case "ls":
		fmt.Println("sealbox ls [-l label]")
		fmt.Println()
		fmt.Println("Without -l, lists every label with its secret count.")
		fmt.Println("With -l, lists the secrets under that label with sizes and")
		fmt.Println("modification times. Never decrypts anything.")
	case "status":
		fmt.Println("sealbox status")
		fmt.Println()
		fmt.Println("Shows the vault location, its permission mode, and a per-label")
		fmt.Println("summary: key presence, secret counts, and index drift.")
		fmt.Println("Never decrypts anything.")
	case "export-key":
		fmt.Println("sealbox export-key [-l label] <file>")
		fmt.Println()
		fmt.Println("Writes the label's key to a file, encrypted under a passphrase")
		fmt.Println("(PBKDF2 + AES-256-CBC). Keep the file and passphrase separately.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  sealbox export-key -l myapp myapp.key.json")
	case "import-key":
		fmt.Println("sealbox import-key [-l label] [--force] <file>")
		fmt.Println()
		fmt.Println("Installs a key from an exported envelope. Without -l the envelope's")
		fmt.Println("original label is used. Refuses to overwrite an existing key unless")
		fmt.Println("--force is given; replacing a key makes its old secrets unreadable.")
	case "keyring":
		fmt.Println("sealbox keyring <save|delete|status> [-l label]")
		fmt.Println()
		fmt.Println("Mirrors the label's key in the OS keyring as a recoverable backup.")
		fmt.Println("The key file on disk remains authoritative.")
	case "completion":
		fmt.Println("sealbox completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(sealbox completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(sealbox completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  sealbox completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}

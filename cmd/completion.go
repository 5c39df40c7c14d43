package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_sealbox() {
    local cur prev words cword
    _init_completion || return

    local commands="get set rm ls status export-key import-key keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        get|set|rm|ls)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-l" -- "$cur"))
            fi
            ;;
        export-key|import-key)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-l --force" -- "$cur"))
            else
                _filedir
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _sealbox sealbox
`

const zshCompletion = `#compdef sealbox

_sealbox() {
    local -a commands
    commands=(
        'get:Decrypt and print a secret'
        'set:Store a secret'
        'rm:Remove secrets'
        'ls:List labels or secrets'
        'status:Show vault status'
        'export-key:Export a label key to a passphrase-protected file'
        'import-key:Import a label key from an exported file'
        'keyring:Mirror a label key in the OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'sealbox commands' commands
            ;;
        args)
            case "${words[2]}" in
                get|set|rm|ls)
                    _arguments '-l[Label]:label:'
                    ;;
                export-key|import-key)
                    _arguments '-l[Label]:label:' '--force[Overwrite existing key]' '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'sealbox commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_sealbox "$@"
`

const fishCompletion = `# sealbox fish completions

set -l commands get set rm ls status export-key import-key keyring help completion

complete -c sealbox -f

# Commands
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a get -d 'Decrypt and print a secret'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a set -d 'Store a secret'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove secrets'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List labels or secrets'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a export-key -d 'Export a label key'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a import-key -d 'Import a label key'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Mirror key in OS keyring'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c sealbox -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# Label flag
complete -c sealbox -n "__fish_seen_subcommand_from get set rm ls export-key import-key" -s l -d 'Label'

# import-key flags and files
complete -c sealbox -n "__fish_seen_subcommand_from import-key" -l force -d 'Overwrite existing key'
complete -c sealbox -n "__fish_seen_subcommand_from export-key import-key" -F

# keyring subcommands
complete -c sealbox -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c sealbox -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c sealbox -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`

// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tropy/ttp/internal/meta"
)

const bashCompletionScript = `# bash completion for ttp
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_ttp()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff pprint compile completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local s3="--region --profile --endpoint"

    case "$cmd" in
        diff)
            local opts="$s3 --output -o --color -c --titles -t --padding --ignore -i --filter -f --summary --unchanged -u --raw --interactive --exit-code"
            ;;
        pprint)
            local opts="$s3 --indent --sort-keys"
            ;;
        compile)
            local opts="$s3"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Templates are files
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _ttp ttp
`

const zshCompletionScript = `#compdef ttp

_ttp() {
  local -a cmds
  cmds=(
    'diff:compare two templates'
    'pprint:pretty-print a template'
    'compile:compact a template'
    'completion:generate shell completion script'
  )

  local -a s3
  s3=(
  '--region[AWS region]:region'
  '--profile[AWS profile]:profile'
  '--endpoint[S3-compatible endpoint]:url'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'ttp commands' cmds
    return
  fi

  case $words[2] in
    diff)
      _arguments -C \
        $s3 \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '--padding[spaces between columns]:padding' \
        '(-i --ignore)'{-i,--ignore}'[attributes to ignore]:attrs' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '--summary[print counts only]' \
        '(-u --unchanged)'{-u,--unchanged}'[list unmoved fields]' \
        '--raw[JSON delta of the documents]' \
        '--interactive[browse the changes]' \
        '--exit-code[exit 1 when templates differ]' \
        '1:from:_files' \
        '2:to:_files'
      ;;
    pprint)
      _arguments -C \
        $s3 \
        '--indent[spaces per level]:indent' \
        '--sort-keys[sort object keys]' \
        '1:file:_files'
      ;;
    compile)
      _arguments -C $s3 '1:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _ttp ttp
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := stdout(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return fmt.Errorf("usage: ttp completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q: use bash or zsh", shell)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "ttp completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}

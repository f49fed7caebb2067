// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colfilter/internal/meta"
)

const bashCompletionScript = `# bash completion for colfilter
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_colfilter()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "keys print suggest view completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local table="--case-sensitive -C --columns --exact -x --filter -f --format --id --ignore --no-hash --only --root --title --profile --region"
    local out="--color -c --marks --mismatch -m --output -o --padding --titles -t"

    case "$cmd" in
        keys|print|view)
            local opts="$table $out"
            ;;
        suggest)
            local opts="$table"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --mismatch|-m)
            COMPREPLY=( $(compgen -W "show hide only" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "csv tsv json yaml" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise we're on the source positional, complete files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _colfilter colfilter
`

const zshCompletionScript = `#compdef colfilter

_colfilter() {
  local -a cmds
  cmds=(
    'keys:show the persisted filter keys of a table'
    'print:filter a table and print the rows'
    'suggest:list the suggestions for a column'
    'view:filter a table interactively'
    'completion:generate shell completion script'
  )

  local -a table
  table=(
  '(-C --case-sensitive)'{-C,--case-sensitive}'[match queries with case]'
  '--columns[column specs]:columns'
  '(-x --exact)'{-x,--exact}'[match the whole cell]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--format[source format]:format:(csv tsv json yaml)'
  '--id[table id]:id'
  '--ignore[columns excluded from filtering]:columns'
  '--no-hash[do not persist filters]'
  '--only[columns that take filters]:columns'
  '--root[record list path]:path'
  '--title[popover title template]:title'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  )

  local -a out
  out=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--marks[add match state]'
  '(-m --mismatch)'{-m,--mismatch}'[mismatching rows]:mode:(show hide only)'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[cell padding]:padding'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'colfilter commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    keys|print|view)
      _arguments -C $table $out '::source:_files'
      ;;
    suggest)
      _arguments -C $table '1:source:_files' '2:column'
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
compdef _colfilter colfilter
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: colfilter completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "colfilter completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}

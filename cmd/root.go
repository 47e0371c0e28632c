package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"kubeswitch/pkg/logging"
)

// rootCmd represents the base command. kubeswitch is flag driven: the
// single positional argument is the context (or namespace) query and
// flags pick which flow runs.
var rootCmd = newRootCmd()

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kubeswitch version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "kubeswitch [NAME]",
		Short: "Switch between stored kubeconfig contexts and namespaces",
		Long: `kubeswitch keeps kubeconfig files under a single directory and lets you
switch between them without mutating any shared state. The binary only
prints a line protocol on stdout; the shell wrapper installed by
--init applies it to the calling session.

Run 'kubeswitch --init bash' (or zsh) and source the output from your
shell profile to install the wrapper.`,
		Args: cobra.MaximumNArgs(1),
		// SilenceUsage is set to true to prevent printing usage message on
		// errors handled by us (e.g. canceled selection, unknown context)
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.query = args[0]
			}
			logging.Init(opts.debug, cmd.ErrOrStderr())
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin())
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.namespace, "namespace", "n", false, "switch the namespace of the current context")
	flags.BoolVarP(&opts.edit, "edit", "e", false, "open the context in the configured editor, creating it if missing")
	flags.BoolVarP(&opts.delete, "delete", "d", false, "delete the context from the store")
	flags.BoolVarP(&opts.list, "list", "l", false, "list stored contexts")
	flags.BoolVarP(&opts.current, "current", "c", false, "show the current context")
	flags.BoolVarP(&opts.unset, "unset", "u", false, "reset the current session")
	flags.StringVar(&opts.link, "link", "", "create a context as a symlink, format SOURCE:TARGET")
	flags.StringVar(&opts.initShell, "init", "", "print the wrapper script for a shell (bash or zsh)")
	flags.StringVar(&opts.compShell, "comp", "", "print the completion script for a shell (bash or zsh)")
	flags.BoolVar(&opts.compList, "comp-list", false, "print completion candidates")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	_ = flags.MarkHidden("comp-list")

	cmd.MarkFlagsMutuallyExclusive(
		"namespace", "edit", "delete", "list", "current", "unset",
		"link", "init", "comp", "comp-list",
	)

	return cmd
}

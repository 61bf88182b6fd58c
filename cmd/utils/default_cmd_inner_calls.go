package utils

import "github.com/spf13/cobra"

// PropagatePersistentPreRun runs the persistent pre-run hook of the closest ancestor that has one, since cobra only
// runs the hook closest to the executed command.
func PropagatePersistentPreRun(cmd *cobra.Command, args []string) error {
	for parent := cmd.Parent(); parent != nil; parent = parent.Parent() {
		if parent.PersistentPreRunE != nil {
			return parent.PersistentPreRunE(parent, args)
		}
		if parent.PersistentPreRun != nil {
			parent.PersistentPreRun(parent, args)
			return nil
		}
	}
	return nil
}

func CallHelpCommand(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

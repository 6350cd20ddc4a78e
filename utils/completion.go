package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var completionExts = map[string]string{
	"bash":       "sh",
	"powershell": "ps1",
	"zsh":        "zsh",
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:       "completion [bash/powershell/zsh]",
	Short:     "Generate bash/powershell/zsh completion scripts",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "powershell", "zsh"},
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("utils.completion.source") {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(os.Stdout)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletion(os.Stdout)
			case "zsh":
				err = cmd.Root().GenZshCompletion(os.Stdout)
			}
			if err != nil {
				fmt.Printf("Error generating completion file: %s\n", err)
				os.Exit(1)
			}
			return
		}

		file, err := getConfigPath("completion." + completionExts[args[0]])
		if err != nil {
			fmt.Printf("Error saving completion file: %s\n", err)
			os.Exit(1)
		}
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletionFile(file)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionFile(file)
		case "zsh":
			err = cmd.Root().GenZshCompletionFile(file)
		}
		if err != nil {
			fmt.Printf("Error saving completion file: %s\n", err)
			os.Exit(1)
		}
		fmt.Println("Completions saved to " + file)
		fmt.Println("Source this file from your shell profile to load them.")
	},
}

func getConfigPath(fileName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "packmod")
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func init() {
	utilsCmd.AddCommand(completionCmd)

	completionCmd.Flags().Bool("source", false, "Output the source of the commands to be installed, rather than installing them")
	_ = viper.BindPFlag("utils.completion.source", completionCmd.Flags().Lookup("source"))
}

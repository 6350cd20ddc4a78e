package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// Version is displayed by the -V flag; overridden with ldflags on release builds
var Version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "packmod",
	Short:   "A command line tool for packing mods into distributable archives",
	Version: Version,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runPack(cmd)
	},
}

// Execute starts the root command for packmod
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to packmod
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.StringSlice("assets", []string{"assets"}, "Asset directories to be included in the package")
	flags.String("build", "dotnet build -p:DebugType=Portable", "The command used to build the project")
	flags.BoolP("compile", "c", false, "Run the build command before packing")
	flags.StringSlice("include", []string{"Locals", "LICENSE", "default_config.json", "icon.png", "mod.json"},
		"Additional files or directories to include")
	flags.StringP("output", "o", "", "The final output path of the packed zip file (default derived from mod.json)")
	flags.Bool("pdb", false, "Keep .pdb debug symbol files in the package")
	flags.StringSlice("sources", []string{"Code", "code", "src"}, "Source code directories to include")
	flags.Bool("open", false, "Open the folder containing the packed archive when done")
	bindFlags(flags, "assets", "build", "compile", "include", "output", "pdb", "sources", "open")

	// Defined manually so the short form is -V, keeping -v free
	flags.BoolP("version", "V", false, "version for packmod")

	rootCmd.PersistentFlags().BoolP("non-interactive", "y", false, "Do not prompt for input (suitable for scripts)")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.packmod.toml)")
}

func bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".packmod" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".packmod")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
	"github.com/mattn/go-isatty"
	"github.com/packmod/packmod/core"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
	"gopkg.in/dixonwille/wmenu.v4"
)

// packOptions is the fully resolved configuration for a single pack run.
// Precedence: explicit flags, then packmod.toml, then env/user config, then defaults.
type packOptions struct {
	Assets        []string
	Build         string
	Compile       bool
	Include       []string
	Output        string
	PDB           bool
	Sources       []string
	Open          bool
	ArtifactRegex string
}

func runPack(cmd *cobra.Command) {
	proj, err := core.LoadProjectConfig(core.ProjectConfigFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	opts := resolveOptions(cmd, proj)

	var artifacts []core.FileEntry
	if opts.Compile {
		artifacts, err = core.RunBuild(opts.Build, opts.ArtifactRegex, opts.PDB, os.Stdout)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(artifacts) == 0 {
			fmt.Println("Warning: no built artifacts were found in the build output")
		} else {
			fmt.Printf("Compiled %d files\n", len(artifacts))
		}
	}

	ign, err := core.LoadIgnore(core.IgnoreFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	collector := core.NewCollector(".", opts.PDB, ign)
	for _, dir := range opts.Sources {
		if err := collector.AddTree(dir); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	for _, dir := range opts.Assets {
		if err := collector.AddTree(dir); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	for _, path := range opts.Include {
		if err := collector.AddTree(path); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	for _, a := range artifacts {
		collector.AddFile(a.Source, a.Target)
	}

	files := collector.Entries()
	if len(files) == 0 {
		if !PromptYesNo("No files were collected. Write an empty archive? [Y/n]: ") {
			fmt.Println("Cancelled!")
			return
		}
	}

	output := opts.Output
	if output == "" {
		output = deriveOutput(files)
	}

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(len(files)),
		mpb.PrependDecorators(
			decor.Name("Packing"),
			decor.CountersNoUnit(" %d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
	err = core.WriteArchive(output, files, func(core.FileEntry) {
		bar.Increment()
	})
	// Entries that vanished since collection are skipped, so force completion
	bar.SetTotal(int64(len(files)), true)
	progress.Wait()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	hash, err := core.ArchiveHash(output)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("SHA256: " + hash)

	printPacked(output)

	if opts.Open {
		abs, err := filepath.Abs(output)
		if err == nil {
			err = open.Start(filepath.Dir(abs))
		}
		if err != nil {
			fmt.Printf("Failed to open output folder: %s\n", err)
		}
	}
}

func resolveOptions(cmd *cobra.Command, proj core.ProjectConfig) packOptions {
	flags := cmd.Flags()
	return packOptions{
		Assets:        resolveList(flags.Changed("assets"), "assets", proj.Assets),
		Build:         resolveString(flags.Changed("build"), "build", proj.Build),
		Compile:       viper.GetBool("compile"),
		Include:       resolveList(flags.Changed("include"), "include", proj.Include),
		Output:        resolveString(flags.Changed("output"), "output", proj.Output),
		PDB:           resolveBool(flags.Changed("pdb"), "pdb", proj.PDB),
		Sources:       resolveList(flags.Changed("sources"), "sources", proj.Sources),
		Open:          viper.GetBool("open"),
		ArtifactRegex: proj.ArtifactRegex,
	}
}

func resolveList(flagSet bool, key string, proj []string) []string {
	if flagSet || proj == nil {
		return viper.GetStringSlice(key)
	}
	return proj
}

func resolveString(flagSet bool, key string, proj string) string {
	if flagSet || proj == "" {
		return viper.GetString(key)
	}
	return proj
}

func resolveBool(flagSet bool, key string, proj *bool) bool {
	if flagSet || proj == nil {
		return viper.GetBool(key)
	}
	return *proj
}

// deriveOutput decides where the archive goes when -o is not given: next to
// the project in bin/Mod, named after mod.json, falling back to the project
// directory name when no mod.json was collected.
func deriveOutput(files []core.FileEntry) string {
	candidates := core.FindMetadata(files, core.ModMetaFile)
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return core.DefaultArchivePath(projectName() + ".zip")
	case 1:
		return outputFromMod(candidates[0])
	default:
		if viper.GetBool("non-interactive") {
			return outputFromMod(candidates[0])
		}
		chosen := candidates[0]
		menu := wmenu.NewMenu("Multiple " + core.ModMetaFile + " files were collected, choose one:")
		for i, v := range candidates {
			menu.Option(v, v, i == 0, nil)
		}
		menu.Action(func(menuRes []wmenu.Opt) error {
			if len(menuRes) != 1 || menuRes[0].Value == nil {
				return errors.New("didn't get a valid option")
			}
			chosen = menuRes[0].Value.(string)
			return nil
		})
		if err := menu.Run(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		return outputFromMod(chosen)
	}
}

func outputFromMod(path string) string {
	mod, err := core.LoadMod(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if !mod.SemverValid() {
		fmt.Printf("Warning: mod version %q is not a valid semantic version\n", mod.Version)
	}
	return mod.DefaultArchivePath()
}

// projectName turns the working directory name into an archive base name,
// e.g. "my-cool-mod" becomes "MyCoolMod"
func projectName() string {
	wd, err := os.Getwd()
	if err != nil {
		return "mod"
	}
	name := filepath.Base(wd)
	if name == "." || name == string(filepath.Separator) || len(name) == 0 {
		return "mod"
	}
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	titled := titlecase.Title(strings.Join(camelcase.Split(cleaned), " "))
	return strings.ReplaceAll(titled, " ", "")
}

func printPacked(output string) {
	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	if isatty.IsTerminal(os.Stdout.Fd()) && enableHyperlinks() {
		uri := "file://" + filepath.ToSlash(abs)
		fmt.Printf("Packed mod at: \x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\\n", uri, abs)
	} else {
		fmt.Println("Packed mod at: " + abs)
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/projrename/internal/config"
	"github.com/aidanlsb/projrename/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the global configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		created, err := config.CreateDefaultAt(path)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": created}, nil)
			return nil
		}
		if created {
			fmt.Println(ui.Success("Created " + ui.FilePath(path)))
		} else {
			fmt.Println(ui.Info("Config already exists at " + ui.FilePath(path)))
		}
		return nil
	},
}

type configView struct {
	Path        string              `json:"path"`
	SkipConfirm bool                `json:"skip_confirm"`
	Audit       bool                `json:"audit"`
	AuditFile   string              `json:"audit_file"`
	LogLevel    string              `json:"log_level"`
	Layout      config.LayoutConfig `json:"layout"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective global settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		path := getConfigPath()
		layout, err := effectiveLayout(newFileSystem(), "")
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		view := configView{
			Path:        path,
			SkipConfirm: c.SkipConfirm,
			Audit:       c.AuditEnabled(),
			AuditFile:   c.ResolveAuditPath(path),
			LogLevel:    c.GetLogLevel(),
			Layout: config.LayoutConfig{
				DescriptorExt: layout.DescriptorExt,
				MetadataFile:  layout.MetadataFile,
				ManifestGlob:  layout.ManifestGlob,
			},
		}

		if isJSONOutput() {
			outputSuccess(view, nil)
			return nil
		}

		fmt.Println(ui.Field("config", ui.FilePath(view.Path)))
		fmt.Println(ui.Field("skip_confirm", fmt.Sprint(view.SkipConfirm)))
		fmt.Println(ui.Field("audit", fmt.Sprint(view.Audit)))
		fmt.Println(ui.Field("audit_file", ui.FilePath(view.AuditFile)))
		fmt.Println(ui.Field("log_level", view.LogLevel))
		fmt.Println(ui.Field("layout.descriptor_ext", view.Layout.DescriptorExt))
		fmt.Println(ui.Field("layout.metadata_file", view.Layout.MetadataFile))
		fmt.Println(ui.Field("layout.manifest_glob", view.Layout.ManifestGlob))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

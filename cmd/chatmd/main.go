package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/chatmd/internal/chat"
	"github.com/gubarz/chatmd/internal/config"
	"github.com/gubarz/chatmd/internal/logging"
	"github.com/gubarz/chatmd/internal/output"
	"github.com/gubarz/chatmd/internal/parser"
	"github.com/gubarz/chatmd/internal/ui"
)

var version = "0.1.0"

var errNoInput = errors.New("no transcript given: pass a file, or pipe one on stdin")

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	logging.SetLevel(config.GetLogLevel())
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatmd [file|-]",
		Short: "Parse plain-text chat transcripts",
		Long: `Parses a plain-text chat transcript into chat-completion messages.

Sections start with ">>> role" for human-authored text or "<<< role" for
model output. An "include" section pulls in files and globs, one per line,
with images embedded as base64 data URLs.

Reads stdin when the file is "-" or omitted.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runParse,
	}

	rootCmd.AddCommand(newViewCmd(), newSchemaCmd(), newRolesCmd())

	rootCmd.PersistentFlags().StringP("dir", "C", "", "Base directory for relative include paths")
	rootCmd.PersistentFlags().Int("max-files", 0, "Maximum files included per parse, 0 for unlimited")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringP("output", "o", "", "Output format: json, yaml, text")
	rootCmd.Flags().Bool("print", false, "Print the result (default)")
	rootCmd.Flags().Bool("copy", false, "Copy the result to the clipboard")
	rootCmd.Flags().Bool("compact", false, "Single-line JSON output")

	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("max_include_files", rootCmd.PersistentFlags().Lookup("max-files"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))

	return rootCmd
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse the parsed messages of a transcript",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	cmd.Flags().BoolP("watch", "w", false, "Re-parse when the file changes")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the message output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := output.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles [file|-]",
		Short: "Show each section with the role it is attributed to",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRoles,
	}
}

// newParser builds a parser from the effective configuration
func newParser() *parser.Parser {
	return parser.New(parser.Options{
		Dir:      config.GetDir(),
		MaxFiles: config.GetMaxIncludeFiles(),
		Logger:   logging.NewLogger("parser"),
	})
}

// readTranscript reads the named file, or stdin for "-" and no argument
func readTranscript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && len(args) == 0 {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return "", errNoInput
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runParse(cmd *cobra.Command, args []string) error {
	// Handle output mode flags
	mode := output.ModePrint
	if c, _ := cmd.Flags().GetBool("copy"); c {
		mode = output.ModeCopy
	}
	compact, _ := cmd.Flags().GetBool("compact")

	out := cmd.OutOrStdout()
	format, err := output.ParseFormat(config.GetOutput())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DefaultFormat(out)
	}

	text, err := readTranscript(cmd, args)
	if err != nil {
		return err
	}

	messages, err := newParser().Parse(text)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	return output.NewPrinter(out).
		WithOptions(output.Options{Compact: compact, RoleColor: config.GetRoleColor}).
		Output(messages, format, mode)
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	watch, _ := cmd.Flags().GetBool("watch")

	p := newParser()
	return ui.Run(path, func() ([]chat.Message, error) {
		return p.ParseFile(path)
	}, watch)
}

func runRoles(cmd *cobra.Command, args []string) error {
	text, err := readTranscript(cmd, args)
	if err != nil {
		return err
	}
	sections, err := parser.Sections(text)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tMARKER\tROLE\tKIND\tEFFECTIVE")
	for _, r := range parser.ResolveRoles(sections) {
		effective := string(r.Role)
		if r.Suppressed() {
			effective = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Line, r.Marker, r.Section.Role, r.Kind, effective)
	}
	return w.Flush()
}

func main() {
	rootCmd := newRootCmd()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docqa/internal/app"
	"docqa/internal/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file|pattern>...",
	Short: "Upload and index documents",
	Long: `Upload one or more documents (PDF, DOCX, TXT) and index them for
retrieval. Arguments may be file paths or doublestar glob patterns.

Examples:
  docqa upload report.pdf
  docqa upload "docs/**/*.txt" notes.docx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched")
	}

	a, err := app.New(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	var bar *progressbar.ProgressBar
	if len(paths) > 1 {
		bar = progressbar.Default(int64(len(paths)), "uploading")
	}

	uploaded := 0
	for _, p := range paths {
		if bar != nil {
			bar.Add(1)
		}

		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		name := filepath.Base(p)
		docID, err := a.Ingestor.Ingest(cmd.Context(), data, name)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateName) {
				fmt.Printf("warning: file %q is already uploaded\n", name)
				continue
			}
			if errors.Is(err, domain.ErrCapacityExceeded) {
				return fmt.Errorf("maximum number of documents (%d) reached; remove some before uploading more", GetConfig().Ingest.MaxDocuments)
			}
			fmt.Fprintf(os.Stderr, "error processing %s: %v\n", name, err)
			continue
		}

		fmt.Printf("uploaded %q (doc_id: %s)\n", name, docID)
		uploaded++
	}

	if uploaded == 0 {
		return fmt.Errorf("no documents were uploaded")
	}
	return nil
}

// expandPatterns resolves literal paths and glob patterns to a file list.
func expandPatterns(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if matches == nil {
			// Not a pattern match; treat as a literal path so the read
			// error is reported per file.
			matches = []string{arg}
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	return paths, nil
}

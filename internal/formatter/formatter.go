// package formatter provides functions to export movie listings and details
// to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/shared"
)

// ExportToCSV converts a movie listing to CSV format with columns: ID, Title, Year, Rating
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			strconv.Itoa(movie.ID),
			movie.Title,
			movie.Year(),
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie listing to Markdown format
func ExportToMarkdown(title string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	for i, movie := range movies {
		yearPart := ""
		if year := movie.Year(); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%.1f]\n", i+1, movie.Title, yearPart, movie.VoteAverage))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a movie listing to plain text format
func ExportToText(title string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(movies)))

	for i, movie := range movies {
		yearPart := ""
		if year := movie.Year(); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, movie.Title, yearPart))
	}

	return buf.Bytes(), nil
}

// DetailToText renders a movie detail as plain text
func DetailToText(detail *models.MovieDetail) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Title: %s\n", detail.Title))
	if year := detail.Year(); year != "" {
		buf.WriteString(fmt.Sprintf("Year: %s\n", year))
	}
	buf.WriteString(fmt.Sprintf("Rating: %.1f\n", detail.VoteAverage))
	buf.WriteString(fmt.Sprintf("Runtime: %s\n", shared.FormatRuntime(detail.Runtime)))
	if len(detail.Genres) > 0 {
		buf.WriteString(fmt.Sprintf("Genres: %s\n", strings.Join(detail.Genres, ", ")))
	}
	if detail.Director != "" {
		buf.WriteString(fmt.Sprintf("Director: %s\n", detail.Director))
	}
	if len(detail.Cast) > 0 {
		buf.WriteString(fmt.Sprintf("Cast: %s\n", strings.Join(detail.Cast, ", ")))
	}
	if len(detail.Countries) > 0 {
		buf.WriteString(fmt.Sprintf("Countries: %s\n", strings.Join(detail.Countries, ", ")))
	}
	if len(detail.Languages) > 0 {
		buf.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(detail.Languages, ", ")))
	}
	if url := detail.IMDbURL(); url != "" {
		buf.WriteString(fmt.Sprintf("IMDb: %s\n", url))
	}
	if detail.Overview != "" {
		buf.WriteString(fmt.Sprintf("\n%s\n", detail.Overview))
	}

	return buf.Bytes()
}

// DetailToMarkdown renders a movie detail as Markdown with optional poster image
func DetailToMarkdown(detail *models.MovieDetail, imageFilename string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", detail.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", imageFilename))
	}

	if year := detail.Year(); year != "" {
		buf.WriteString(fmt.Sprintf("**Year**: %s\n", year))
	}
	buf.WriteString(fmt.Sprintf("**Rating**: %.1f\n", detail.VoteAverage))
	buf.WriteString(fmt.Sprintf("**Runtime**: %s\n", shared.FormatRuntime(detail.Runtime)))
	if len(detail.Genres) > 0 {
		buf.WriteString(fmt.Sprintf("**Genres**: %s\n", strings.Join(detail.Genres, ", ")))
	}
	if detail.Director != "" {
		buf.WriteString(fmt.Sprintf("**Director**: %s\n", detail.Director))
	}
	if len(detail.Cast) > 0 {
		buf.WriteString(fmt.Sprintf("**Cast**: %s\n", strings.Join(detail.Cast, ", ")))
	}
	if url := detail.IMDbURL(); url != "" {
		buf.WriteString(fmt.Sprintf("**IMDb**: %s\n", url))
	}

	if detail.Overview != "" {
		buf.WriteString(fmt.Sprintf("\n## Overview\n\n%s\n", detail.Overview))
	}

	return buf.Bytes()
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToDetailJSON generates a pretty JSON representation of a movie detail
func ToDetailJSON(detail *models.MovieDetail) ([]byte, error) {
	return shared.MarshalJSON(detail, true)
}

// WriteCSVExport writes a movie listing to {base}_movies.csv.
//
// Defaults to "movies" as the base filename.
func WriteCSVExport(movies []models.Movie, baseFilepath string) (string, error) {
	if baseFilepath == "" {
		baseFilepath = "movies"
	}

	csvData, err := ExportToCSV(movies)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	csvFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(csvFile, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return csvFile, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory   string
	Files       []string
	PosterImage string
}

// WriteMarkdownExport exports a movie detail to Markdown format in a dedicated directory.
//
// Directory name defaults to the movie ID.
// The imageURL parameter is optional - if provided, attempts to download the poster.
// Creates a directory structure: {dir}/README.md and optionally {dir}/poster.jpg
func WriteMarkdownExport(detail *models.MovieDetail, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = strconv.Itoa(detail.ID)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var posterFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download poster: %v\n", err)
		} else {
			posterFilename = "poster.jpg"
			posterPath := fmt.Sprintf("%s/%s", outputDir, posterFilename)
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster: %v\n", err)
				posterFilename = ""
			} else {
				result.PosterImage = posterPath
				result.Files = append(result.Files, posterPath)
			}
		}
	}

	mdData := DetailToMarkdown(detail, posterFilename)

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport writes a movie listing to plain text format.
//
// Defaults to movies.txt as the filename.
func WriteTextExport(title string, movies []models.Movie, filepath string) (string, error) {
	if filepath == "" {
		filepath = "movies.txt"
	}

	textData, err := ExportToText(title, movies)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

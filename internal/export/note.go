package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/lepinkainen/cityguide/internal/fileutil"
	"github.com/lepinkainen/cityguide/internal/obsidian"
	"github.com/lepinkainen/cityguide/internal/place"
)

// managedKeys are rewritten on every export. Other frontmatter keys in an
// existing note belong to the user and survive an overwrite.
var managedKeys = map[string]bool{
	"title":     true,
	"id":        true,
	"category":  true,
	"location":  true,
	"image":     true,
	"wikipedia": true,
	"enriched":  true,
	"tags":      true,
	"aliases":   true,
}

// BuildNote renders a merged place view as a markdown note.
func BuildNote(v *place.View) ([]byte, error) {
	return buildNote(v).Build()
}

func buildNote(v *place.View) *obsidian.Note {
	tags := obsidian.NewTagSet()
	tags.Add("place")
	if v.Category != "" {
		tags.Add("category/" + v.Category)
	}
	tags.AddIf(v.Enriched, "wikipedia")

	fm := obsidian.NewFrontmatter()
	fm.Set("title", v.Name)
	fm.Set("id", v.ID)
	fm.Set("category", v.Category)
	fm.Set("location", v.Location)
	fm.Set("image", v.ImageURL)
	fm.Set("wikipedia", v.WikiURL)
	fm.Set("enriched", v.Enriched)
	fm.Set("tags", tags.GetSorted())
	if len(v.Aliases) > 0 {
		fm.Set("aliases", v.Aliases)
	}

	body := fileutil.NewMarkdownBuilder().
		AddHeading(1, v.Name).
		AddImage(v.Name, v.ImageURL).
		AddParagraph(v.Description).
		AddCallout("quote", "Also known as", strings.Join(v.Aliases, "\n")).
		AddTable("Field", "Value", v.Infobox)

	if len(v.Gallery) > 0 {
		body.AddHeading(2, "Gallery")
		for _, item := range v.Gallery {
			body.AddImage(item.Caption, item.ImageURL)
		}
	}

	body.AddExternalLink("Wikipedia", v.WikiURL)

	return &obsidian.Note{Frontmatter: fm, Body: body.Build()}
}

// keepUserFields copies the user's own frontmatter keys and tags from the
// note already at path into note. A missing file is not an error; a note
// written for another place is.
func keepUserFields(path string, note *obsidian.Note) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	existing, err := obsidian.ParseMarkdown(content)
	if err != nil {
		return err
	}

	old := existing.Frontmatter
	if id := old.GetString("id"); id != "" && id != note.Frontmatter.GetString("id") {
		return fmt.Errorf("note belongs to place %s", id)
	}

	for _, key := range old.Keys() {
		if managedKeys[key] {
			continue
		}
		value, _ := old.Get(key)
		note.Frontmatter.Set(key, value)
	}

	tags := obsidian.NewTagSet()
	for _, tag := range note.Frontmatter.GetStringArray("tags") {
		tags.Add(tag)
	}
	for _, tag := range old.GetStringArray("tags") {
		if !generatedTag(tag) {
			tags.Add(tag)
		}
	}
	note.Frontmatter.Set("tags", tags.GetSorted())
	return nil
}

// generatedTag reports whether tag is one BuildNote derives from the place.
func generatedTag(tag string) bool {
	return tag == "place" || tag == "wikipedia" || strings.HasPrefix(tag, "category/")
}

// notePath picks the note file for v. Names already used in this run get
// the first block of the id appended.
func notePath(dir string, v *place.View, used map[string]bool) string {
	name := v.Name
	if fileutil.SanitizeFilename(name) == "" {
		name = v.ID
	}
	if used[fileutil.SanitizeFilename(name)] {
		id := v.ID
		if len(id) > 8 {
			id = id[:8]
		}
		name = fmt.Sprintf("%s (%s)", name, id)
	}
	used[fileutil.SanitizeFilename(name)] = true
	return fileutil.GetMarkdownFilePath(name, dir)
}

func writeNotes(views []*place.View, dir string, overwrite bool) (written, skipped int, err error) {
	used := make(map[string]bool, len(views))

	for _, v := range views {
		note := buildNote(v)
		path := notePath(dir, v, used)
		if overwrite {
			if err := keepUserFields(path, note); err != nil {
				slog.Warn("Replacing note without keeping its frontmatter", "path", path, "error", err)
			}
		}

		content, err := note.Build()
		if err != nil {
			return written, skipped, fmt.Errorf("failed to build note for %s: %w", v.Name, err)
		}

		ok, err := fileutil.WriteFileWithOverwrite(path, content, 0644, overwrite)
		if err != nil {
			return written, skipped, err
		}
		if !ok {
			slog.Debug("Note exists, skipping", "path", path)
			skipped++
			continue
		}
		written++
	}

	slog.Info("Wrote markdown notes", "dir", dir, "written", written, "skipped", skipped)
	return written, skipped, nil
}

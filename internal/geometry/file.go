package geometry

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/accessdocs/pdf-remediator/internal/model"
)

// OpenFile reads a PDF from disk and extracts its raw page content and
// metadata. Any failure to open or parse the file is reported as
// ErrSourceUnreadable.
func OpenFile(path string, maxFileSize int64) (*Document, error) {
	fileInfo, err := validateFile(path, maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %w", ErrSourceUnreadable, err)
	}
	defer f.Close()

	info, err := extractInfo(path, reader)
	if err != nil {
		return nil, err
	}
	info.FileSizeBytes = fileInfo.Size()

	pages := make([]Page, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		pages = append(pages, extractPage(reader, pageNum))
	}

	return &Document{Info: info, Pages: pages}, nil
}

// validateFile performs basic checks before attempting to parse
func validateFile(path string, maxFileSize int64) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}

	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	return fileInfo, nil
}

// extractInfo gathers document-level metadata. The page count and permission
// flags come from pdfcpu, which handles encrypted and lightly damaged files
// more reliably; title and author come from the trailer Info dictionary.
func extractInfo(path string, reader *pdf.Reader) (Info, error) {
	info := Info{Permissions: model.FullPermissions()}

	file, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("%w: cannot reopen file: %w", ErrSourceUnreadable, err)
	}
	defer file.Close()

	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return info, fmt.Errorf("%w: failed to read PDF context: %w", ErrSourceUnreadable, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		// Leave PageCount at zero so the model builder can report the
		// metadata failure distinctly from an unreadable source.
		info.PageCount = 0
	} else {
		info.PageCount = ctx.PageCount
	}

	if ctx.E != nil {
		info.Permissions = model.PermissionsFromInt32(int32(ctx.E.P))
	}

	fillDocInfo(reader, &info)

	return info, nil
}

// fillDocInfo reads title, author, and language from the document catalog
// and Info dictionary. The ledongthuc/pdf Value API panics on some malformed
// dictionaries, so extraction is best-effort.
func fillDocInfo(reader *pdf.Reader, info *Info) {
	defer func() {
		// Metadata extraction failed, continue with what we have
		_ = recover()
	}()

	trailer := reader.Trailer()
	if trailer.IsNull() {
		return
	}

	if root := trailer.Key("Root"); !root.IsNull() {
		if lang := root.Key("Lang"); !lang.IsNull() {
			info.Language = strings.TrimSpace(lang.Text())
		}
	}

	dict := trailer.Key("Info")
	if dict.IsNull() {
		return
	}

	if title := dict.Key("Title"); !title.IsNull() {
		info.Title = strings.TrimSpace(title.Text())
	}
	if author := dict.Key("Author"); !author.IsNull() {
		info.Author = strings.TrimSpace(author.Text())
	}
}

// extractPage pulls text lines, images, and table grids from one page.
// Page numbers are 1-based in the reader API; the returned Page carries the
// zero-based index used everywhere downstream.
func extractPage(reader *pdf.Reader, pageNum int) (page Page) {
	page.Index = pageNum - 1

	defer func() {
		// A panic during content parsing yields an empty page rather
		// than aborting the whole document
		_ = recover()
	}()

	p := reader.Page(pageNum)
	if p.V.IsNull() {
		return page
	}

	rows := groupIntoRows(p.Content().Text)
	page.Lines, page.Tables = splitLinesAndTables(rows)
	page.Images = extractImages(p)

	return page
}

// extractImages scans the page's XObject dictionary for image objects
func extractImages(p pdf.Page) []ImageItem {
	var images []ImageItem

	resources := p.V.Key("Resources")
	if resources.IsNull() {
		return nil
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return nil
	}

	ordinal := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		images = append(images, ImageItem{
			Width:   obj.Key("Width").Int64(),
			Height:  obj.Key("Height").Int64(),
			Ordinal: ordinal,
		})
		ordinal++
	}

	return images
}

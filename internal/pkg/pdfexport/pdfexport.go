// Package pdfexport is the document-rendering collaborator boundary. It
// renders structured student content into PDF bytes. Each row may embed a
// raster image fetched over HTTP; a fetch that fails or times out degrades
// to a placeholder box, it never fails the export.
package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/nonso/acadport/internal/pkg/logger"
)

// Field is one labelled value on an info sheet.
type Field struct {
	Label string
	Value string
}

// Sheet is the structured content for a single-student export.
type Sheet struct {
	Title    string
	PhotoURL string
	Fields   []Field
}

// ListingRow is one student line in a bulk listing export.
type ListingRow struct {
	FullName     string
	MatricNumber string
	Email        string
	Department   string
	Level        string
	PhotoURL     string
}

// Renderer renders sheets and listings. The zero value is not usable;
// construct with NewRenderer.
type Renderer struct {
	client       *http.Client
	fetchTimeout time.Duration
}

// NewRenderer builds a Renderer whose per-image fetch is bounded by
// fetchTimeout. The bound is per asset; one slow image never stalls the
// whole export beyond it.
func NewRenderer(fetchTimeout time.Duration) *Renderer {
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	return &Renderer{
		client:       &http.Client{Timeout: fetchTimeout},
		fetchTimeout: fetchTimeout,
	}
}

const (
	photoW = 30 // mm
	photoH = 35
)

// RenderSheet renders a single-student info sheet.
func (r *Renderer) RenderSheet(ctx context.Context, sheet Sheet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, sheet.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	r.drawPhoto(ctx, pdf, sheet.PhotoURL, 160, 30)

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range sheet.Fields {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 8, f.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(90, 8, f.Value, "", "L", false)
	}

	return output(pdf)
}

// RenderListing renders the bulk student listing, one row per student with
// an embedded thumbnail.
func (r *Renderer) RenderListing(ctx context.Context, title string, rows []ListingRow) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	header := []struct {
		label string
		width float64
	}{
		{"Photo", 34}, {"Full Name", 70}, {"Matric No", 40},
		{"Email", 70}, {"Department", 40}, {"Level", 20},
	}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		for _, h := range header {
			pdf.CellFormat(h.width, 8, h.label, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	drawHeader()

	pdf.SetFont("Helvetica", "", 9)
	rowH := photoH + 2.0
	for _, row := range rows {
		if pdf.GetY()+rowH > 190 {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Helvetica", "", 9)
		}

		x, y := pdf.GetXY()
		pdf.CellFormat(header[0].width, rowH, "", "1", 0, "C", false, 0, "")
		r.drawPhoto(ctx, pdf, row.PhotoURL, x+2, y+1)

		cells := []string{row.FullName, row.MatricNumber, row.Email, row.Department, row.Level}
		for i, v := range cells {
			pdf.CellFormat(header[i+1].width, rowH, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

// drawPhoto places the image at (x, y), or a placeholder box when the
// asset cannot be fetched.
func (r *Renderer) drawPhoto(ctx context.Context, pdf *fpdf.Fpdf, url string, x, y float64) {
	img, imgType, err := r.fetchImage(ctx, url)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("Image unavailable, using placeholder")
		drawPlaceholder(pdf, x, y)
		return
	}

	name := url
	opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if pdf.Err() {
		// Undecodable image data is treated the same as a failed fetch.
		pdf.SetError(nil)
		drawPlaceholder(pdf, x, y)
		return
	}
	pdf.ImageOptions(name, x, y, photoW, photoH, false, opts, 0, "")
}

func drawPlaceholder(pdf *fpdf.Fpdf, x, y float64) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.Rect(x, y, photoW, photoH, "D")
	pdf.SetFont("Helvetica", "I", 7)
	pdf.Text(x+5, y+photoH/2, "no photo")
	pdf.SetDrawColor(0, 0, 0)
}

// fetchImage retrieves the image bytes within the renderer's timeout.
func (r *Renderer) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", fmt.Errorf("no image url")
	}

	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, "", err
	}
	return content, imageType(resp.Header.Get("Content-Type"), url), nil
}

// imageType maps the response content type (or URL extension as fallback)
// to the type tag fpdf expects.
func imageType(contentType, url string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	case strings.Contains(contentType, "gif"):
		return "GIF"
	}
	switch strings.ToLower(path.Ext(url)) {
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	default:
		return "JPG"
	}
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

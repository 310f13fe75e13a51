package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	assert.ElementsMatch(t, []string{"pdf", "xlsx", "docx"}, r.Formats())

	for _, format := range []string{"pdf", "PDF", ".docx", "xlsx"} {
		t.Run(format, func(t *testing.T) {
			_, err := r.Lookup(format)
			assert.NoError(t, err)
		})
	}

	_, err := r.Lookup("odt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPDFEncoder(t *testing.T) {
	data, err := NewPDFEncoder().Encode("Meeting notes\n\n- buy milk\n- café")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestXLSXEncoder(t *testing.T) {
	data, err := NewXLSXEncoder().Encode("first\nsecond")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue(xlsxSheet, "A1")
	require.NoError(t, err)
	a2, err := f.GetCellValue(xlsxSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "first", a1)
	assert.Equal(t, "second", a2)
}

func TestDOCXEncoder(t *testing.T) {
	data, err := NewDOCXEncoder().Encode("Tom & Jerry\n<b>bold?</b>")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = string(content)
	}

	require.Contains(t, files, "[Content_Types].xml")
	require.Contains(t, files, "_rels/.rels")
	doc := files["word/document.xml"]
	assert.Contains(t, doc, "Tom &amp; Jerry")
	assert.Contains(t, doc, "&lt;b&gt;bold?&lt;/b&gt;")
}

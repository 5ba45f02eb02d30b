package payloadcms

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
)

var ErrNoFileName = errors.New("payloadcms: file name is required")

// MediaService: загрузка файлов в upload-коллекции.
type MediaService interface {
	Upload(ctx context.Context, r io.Reader, in, out any, opts MediaOptions) (Response, error)
	UploadFromURL(ctx context.Context, fileURL string, in, out any, opts MediaOptions) (Response, error)
}

type MediaServiceOp struct {
	Client *Client
}

type MediaOptions struct {
	// Коллекция, по умолчанию media
	Collection Collection
	// Имя файла без расширения: расширение берётся из определённого MIME
	FileName string
}

// сколько байт смотрим для определения MIME
const sniffLen = 3072

func (s MediaServiceOp) Upload(ctx context.Context, r io.Reader, in, out any, opts MediaOptions) (Response, error) {
	if r == nil {
		return emptyResponse(), errors.New("payloadcms: file reader is required")
	}
	if opts.Collection == "" {
		opts.Collection = CollectionMedia
	}
	if opts.FileName == "" {
		return emptyResponse(), ErrNoFileName
	}
	if ext := filepath.Ext(opts.FileName); ext != "" {
		return emptyResponse(), fmt.Errorf("payloadcms: file name must not carry an extension, got %s", ext)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return emptyResponse(), fmt.Errorf("payloadcms: encode _payload: %w", err)
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return emptyResponse(), fmt.Errorf("payloadcms: read file: %w", err)
	}
	mt := mimetype.Detect(head)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", mt.String())
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, opts.FileName+mt.Extension()))
	fw, err := mw.CreatePart(h)
	if err != nil {
		return emptyResponse(), err
	}
	if _, err := io.Copy(fw, br); err != nil {
		return emptyResponse(), fmt.Errorf("payloadcms: copy file: %w", err)
	}
	if err := mw.WriteField("_payload", string(payload)); err != nil {
		return emptyResponse(), err
	}
	if err := mw.Close(); err != nil {
		return emptyResponse(), fmt.Errorf("payloadcms: close multipart: %w", err)
	}

	req, err := s.Client.NewFormRequest(ctx, http.MethodPost, fmt.Sprintf("/api/%s", opts.Collection), &body, mw.FormDataContentType())
	if err != nil {
		return emptyResponse(), err
	}
	return s.Client.DoWithRequest(ctx, req, out)
}

// UploadFromURL скачивает файл и загружает его; без FileName имя берётся из URL.
func (s MediaServiceOp) UploadFromURL(ctx context.Context, fileURL string, in, out any, opts MediaOptions) (Response, error) {
	if opts.FileName == "" {
		name := fileNameFromURL(fileURL)
		if name == "" {
			return emptyResponse(), fmt.Errorf("%w: cannot derive one from %q", ErrNoFileName, fileURL)
		}
		opts.FileName = strings.TrimSuffix(name, filepath.Ext(name))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return emptyResponse(), err
	}
	resp, err := s.Client.http.Do(req)
	if err != nil {
		return emptyResponse(), err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return emptyResponse(), fmt.Errorf("payloadcms: download %s: status %d", fileURL, resp.StatusCode)
	}
	return s.Upload(ctx, resp.Body, in, out, opts)
}

// fileNameFromURL: последний сегмент пути, если в нём есть расширение
func fileNameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || !strings.Contains(base, ".") {
		return ""
	}
	return base
}

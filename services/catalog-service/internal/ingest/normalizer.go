package ingest

import (
	"fmt"
	"regexp"
)

// driveShareLinkPattern распознает ссылки общего доступа Google Drive
// вида drive.google.com/file/d/<id>/view в любом месте строки
var driveShareLinkPattern = regexp.MustCompile(`drive\.google\.com/file/d/([a-zA-Z0-9_-]+)/view`)

// NormalizeLink переписывает ссылку общего доступа в ссылку прямого
// скачивания того же файла. Любая другая строка (включая пустую)
// возвращается без изменений
func NormalizeLink(rawURL string) string {
	matches := driveShareLinkPattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return rawURL
	}
	return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", matches[1])
}

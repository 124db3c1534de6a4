package format

import "strings"

// AugmentationSuffix is the reference line appended to replies without a link.
func AugmentationSuffix(referenceURL string) string {
	return `<br>Для дополнительной информации посетите <a href="` + referenceURL + `">сайт поддержки AMD</a>`
}

// Augment appends the reference line when text carries no "http" substring.
func Augment(text, referenceURL string) string {
	if strings.Contains(text, "http") {
		return text
	}
	return text + AugmentationSuffix(referenceURL)
}

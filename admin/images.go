package admin

import (
	"fmt"
	"strings"
)

// ImageList is the ordered image URLs staged on a project modal. The first entry is the cover.
// Methods return new lists and never touch stored objects.
type ImageList []string

// Add appends url; blank input is ignored.
func (l ImageList) Add(url string) ImageList {
	url = strings.TrimSpace(url)
	out := append(ImageList{}, l...)
	if url == "" {
		return out
	}
	return append(out, url)
}

// Move takes the item at from and reinserts it at to.
func (l ImageList) Move(from, to int) (ImageList, error) {
	if from < 0 || from >= len(l) || to < 0 || to >= len(l) {
		return nil, fmt.Errorf("move %d to %d: index out of range for %d images", from, to, len(l))
	}
	item := l[from]
	rest := make(ImageList, 0, len(l))
	rest = append(rest, l[:from]...)
	rest = append(rest, l[from+1:]...)

	out := make(ImageList, 0, len(l))
	out = append(out, rest[:to]...)
	out = append(out, item)
	return append(out, rest[to:]...), nil
}

func (l ImageList) Remove(index int) (ImageList, error) {
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("remove %d: index out of range for %d images", index, len(l))
	}
	out := make(ImageList, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...), nil
}

func (l ImageList) Cover() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Package chunk splits long message text into byte-bounded segments.
//
// WeCom webhook messages have a hard payload limit (4096 bytes of UTF-8
// for markdown content). Split cuts a report along line boundaries against
// a smaller target budget so that pagination markers added later still fit
// under the hard limit. Paginate adds the "(i/N)" markers.
//
// All sizes are encoded UTF-8 byte lengths. Segments never cut a
// multi-byte rune in half.
package chunk

package models

import (
	"encoding/base64"
	"hash/fnv"
)

var defaultAvatars = []string{
	`<svg width="80" height="80" viewBox="0 0 80 80" xmlns="http://www.w3.org/2000/svg"><circle cx="40" cy="40" r="40" fill="#7af6ff"/><circle cx="30" cy="35" r="4" fill="#004d4d"/><circle cx="50" cy="35" r="4" fill="#004d4d"/><path d="M30 50 Q 40 60, 50 50" stroke="#004d4d" stroke-width="4" fill="none" stroke-linecap="round"/></svg>`,
	`<svg width="80" height="80" viewBox="0 0 80 80" xmlns="http://www.w3.org/2000/svg"><circle cx="40" cy="40" r="40" fill="#008080"/><path d="M20 60 L 35 35 L 45 50 L 58 25 L 75 60 Z" fill="#fcfcff"/></svg>`,
	`<svg width="80" height="80" viewBox="0 0 80 80" xmlns="http://www.w3.org/2000/svg"><circle cx="40" cy="40" r="40" fill="#f4f4f5"/><path d="M40 20 C60 30 60 50 40 60 C20 50 20 30 40 20 Z" fill="#008080"/></svg>`,
	`<svg width="80" height="80" viewBox="0 0 80 80" xmlns="http://www.w3.org/2000/svg"><circle cx="40" cy="40" r="40" fill="#008080"/><circle cx="40" cy="40" r="15" fill="#7af6ff"/></svg>`,
	`<svg width="80" height="80" viewBox="0 0 80 80" xmlns="http://www.w3.org/2000/svg"><circle cx="40" cy="40" r="40" fill="#030712"/><path d="M55 20 A 25 25 0 1 0 55 60 A 20 20 0 1 1 55 20 Z" fill="#7af6ff"/></svg>`,
	`<svg width="80" height="80" viewBox="0 0 80 80" xmlns="http://www.w3.org/2000/svg"><circle cx="40" cy="40" r="40" fill="#f4f4f5"/><path d="M40 15 C 55 35, 55 50, 40 65 C 25 50, 25 35, 40 15 Z" fill="#7af6ff" stroke="#008080" stroke-width="2"/></svg>`,
}

// DefaultAvatarURIs returns every built-in avatar as an SVG data URI.
func DefaultAvatarURIs() []string {
	uris := make([]string, len(defaultAvatars))
	for i, svg := range defaultAvatars {
		uris[i] = svgDataURI(svg)
	}
	return uris
}

// AvatarFor picks a built-in avatar for seed. The same seed always gets the same avatar.
func AvatarFor(seed string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return svgDataURI(defaultAvatars[int(h.Sum32()%uint32(len(defaultAvatars)))])
}

func svgDataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

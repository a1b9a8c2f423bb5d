package service

import (
	"net/url"
	"strings"
)

// legacyPrefix is the bucket segment older keys were stored with
const legacyPrefix = "project-images/"

// NormalizeKey decodes until stable and strips the legacy bucket segment
func NormalizeKey(key string) string {
	return strings.TrimPrefix(decode(key), legacyPrefix)
}

// decode unescapes repeatedly; keys were double encoded by older clients
func decode(key string) string {
	k := key
	for range 8 {
		d, err := url.PathUnescape(k)
		if err != nil || d == k {
			break
		}
		k = d
	}
	return k
}

//go:build !linux

package devmem

import "os"

func pageSize() int {
	return os.Getpagesize()
}

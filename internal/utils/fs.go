package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

func MoveFile(src, dstDir string) error {
	base := filepath.Base(src)
	dst := filepath.Join(dstDir, base)

	// jika file sudah ada, tambahkan timestamp
	if _, err := os.Stat(dst); err == nil {
		ext := filepath.Ext(base)
		name := base[:len(base)-len(ext)]
		dst = filepath.Join(
			dstDir,
			fmt.Sprintf("%s_%d%s", name, time.Now().Unix(), ext),
		)
	}

	return os.Rename(src, dst)
}

func CountLines(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 20*1024*1024)

	var n int64
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}

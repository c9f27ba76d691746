package blocks

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"levelplot/model"
)

const maxLineLength = 1024 * 1024

// ReadBlocks splits the file at path into time blocks and returns those with
// index in the inclusive range [i, j]. j < 0 selects through the last block.
// An upper bound past the end is sliced, not an error.
func ReadBlocks(path string, i, j int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	all, err := SplitBlocks(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return sliceBlocks(all, i, j), nil
}

// SplitBlocks 按空行或注释行切分数据块，连续的分隔行只开启一个新块
func SplitBlocks(r io.Reader) ([][]string, error) {
	var blocks [][]string
	emptyLines := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if isSeparator(line) {
			if emptyLines == 0 {
				blocks = append(blocks, []string{})
			}
			emptyLines++
			continue
		}
		// 文件直接以数据开头
		if len(blocks) == 0 {
			blocks = append(blocks, []string{})
		}
		emptyLines = 0
		blocks[len(blocks)-1] = append(blocks[len(blocks)-1], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// 文件末尾的分隔行会留下一个空块
	if n := len(blocks); n > 0 && len(blocks[n-1]) == 0 {
		blocks = blocks[:n-1]
	}
	return blocks, nil
}

func isSeparator(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, model.CommentMarker)
}

func sliceBlocks(blocks [][]string, i, j int) [][]string {
	if i < 0 {
		i = 0
	}
	end := len(blocks)
	if j >= 0 && j+1 < end {
		end = j + 1
	}
	if i >= end {
		return [][]string{}
	}
	return blocks[i:end]
}

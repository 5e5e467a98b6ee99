package utils

import "unicode"

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters repeated at boundaries. Chunk ends
// are nudged back to the nearest whitespace so words survive intact.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else if cut := lastSpaceBefore(runes, i, end); cut > i {
			end = cut
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// lastSpaceBefore scans back from end looking for whitespace, but no
// further than a quarter of the chunk, so a run without spaces still
// splits instead of stalling.
func lastSpaceBefore(runes []rune, start, end int) int {
	limit := end - (end-start)/4
	for i := end - 1; i >= limit; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return end
}

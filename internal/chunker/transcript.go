// ABOUTME: Token-budgeted transcript splitter for LLM context windows
// ABOUTME: Greedy word accumulation; chunk order stays chronological
package chunker

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter reports how many model tokens a piece of text costs.
type TokenCounter interface {
	Count(text string) int
}

// SplitByTokens splits text into chronological chunks, greedily
// accumulating whitespace-delimited words until the buffer's token count
// exceeds maxTokens, then flushing the buffer as one space-joined chunk.
//
// A single word that alone exceeds the budget is still flushed as an
// over-budget chunk rather than dropped or split mid-word. The final
// partial buffer is always flushed.
func SplitByTokens(text string, maxTokens int, counter TokenCounter) []string {
	var (
		chunks []string
		buf    []string
		tokens int
	)

	for _, word := range strings.Fields(text) {
		if len(buf) == 0 {
			tokens += counter.Count(word)
		} else {
			tokens += counter.Count(" " + word)
		}
		buf = append(buf, word)

		if tokens > maxTokens {
			chunks = append(chunks, strings.Join(buf, " "))
			buf = buf[:0]
			tokens = 0
		}
	}

	if len(buf) > 0 {
		chunks = append(chunks, strings.Join(buf, " "))
	}
	return chunks
}

// encodingName is the tokenizer used for budget accounting. It matches the
// GPT-4o family the extraction backend runs on.
const encodingName = "cl100k_base"

// TiktokenCounter counts tokens with the cl100k_base BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the cl100k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encodingName, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

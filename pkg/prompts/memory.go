package prompts

import "strings"

// Sentinels delimiting the memory block in prompts. The sanitizer strips
// them from model output.
const (
	MemoryStart = "=== NPC MEMORY CONTEXT ==="
	MemoryEnd   = "=== END MEMORY CONTEXT ==="
)

// NormalizeMemory returns memory as exactly one delimited block. Text that
// already opens with the start sentinel is kept (closed if needed); plain
// text from older clients is wrapped. Blank input yields "".
func NormalizeMemory(memory string) string {
	m := strings.TrimSpace(memory)
	if m == "" {
		return ""
	}
	if strings.Contains(m, MemoryStart) {
		if !strings.Contains(m, MemoryEnd) {
			m += "\n" + MemoryEnd
		}
		return m
	}
	return MemoryStart + "\n" + m + "\n" + MemoryEnd
}

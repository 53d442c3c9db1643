package fleet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ServerEntry is one line of the server list. Fields are kept as written;
// the port is handed to ssh without validation.
type ServerEntry struct {
	Hostname string
	Port     string
	Line     int
}

// ParseLine splits a line the way `read hostname port` does: the first
// whitespace-delimited word is the hostname and the trimmed remainder is the
// port.
func ParseLine(line string) (hostname, port string) {
	line = strings.TrimRight(line, "\r")
	line = strings.TrimLeft(line, " \t")

	idx := strings.IndexAny(line, " \t")
	if idx == -1 {
		return line, ""
	}
	return line[:idx], strings.Trim(line[idx:], " \t")
}

// ServerListReader yields entries one line at a time. Lines of any length
// are accepted.
type ServerListReader struct {
	reader *bufio.Reader
	line   int
	done   bool
	err    error
}

// NewServerListReader creates a reader over a server list
func NewServerListReader(r io.Reader) *ServerListReader {
	return &ServerListReader{reader: bufio.NewReader(r)}
}

// Next returns the next entry. ok is false once input is exhausted or a
// read error occurred; check Err afterwards. A final line without a
// trailing newline is still returned.
func (r *ServerListReader) Next() (entry ServerEntry, ok bool) {
	if r.done {
		return ServerEntry{}, false
	}

	text, err := r.reader.ReadString('\n')
	if err != nil {
		r.done = true
		if err != io.EOF {
			r.err = err
			return ServerEntry{}, false
		}
		if text == "" {
			return ServerEntry{}, false
		}
	}

	r.line++
	hostname, port := ParseLine(strings.TrimSuffix(text, "\n"))
	return ServerEntry{Hostname: hostname, Port: port, Line: r.line}, true
}

// Err returns the first read error, if any
func (r *ServerListReader) Err() error {
	if r.err != nil {
		return fmt.Errorf("failed to read server list at line %d: %w", r.line+1, r.err)
	}
	return nil
}

// ReadServerList reads every entry of a server list
func ReadServerList(r io.Reader) ([]ServerEntry, error) {
	reader := NewServerListReader(r)
	var entries []ServerEntry
	for {
		entry, ok := reader.Next()
		if !ok {
			break
		}
		entries = append(entries, entry)
	}
	return entries, reader.Err()
}

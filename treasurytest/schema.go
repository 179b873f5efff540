package treasurytest

import (
	"bufio"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/iov-one/treasury/codec"
)

var (
	messageRx = regexp.MustCompile(`^message\s+(\w+)\s*\{`)
	fieldRx   = regexp.MustCompile(`^(?:repeated\s+)?[\w.]+\s+\w+\s*=\s*(\d+)`)
)

// SchemaFields reads a .proto file and returns the field numbers declared
// by every top level message, sorted.
func SchemaFields(t testing.TB, path string) map[string][]int32 {
	t.Helper()

	fd, err := os.Open(path)
	if err != nil {
		t.Fatalf("cannot open schema: %s", err)
	}
	defer fd.Close()

	fields := make(map[string][]int32)
	var (
		current string
		depth   int
	)
	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "//") {
			continue
		}
		if depth == 0 {
			if m := messageRx.FindStringSubmatch(line); m != nil {
				current = m[1]
				fields[current] = nil
			}
		} else if m := fieldRx.FindStringSubmatch(line); m != nil {
			n, err := strconv.ParseInt(m[1], 10, 32)
			if err != nil {
				t.Fatalf("%s: invalid field number %q", current, m[1])
			}
			fields[current] = append(fields[current], int32(n))
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("cannot read schema: %s", err)
	}
	for _, nums := range fields {
		sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	}
	return fields
}

// WireFields returns the sorted, distinct field numbers present in the
// serialized form of given message. Populate every field of the message to
// compare it against its schema.
func WireFields(t testing.TB, m codec.Marshaller) []int32 {
	t.Helper()

	raw, err := m.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	seen := make(map[int32]bool)
	err = codec.Decode(raw, func(field int32, r *codec.Reader) error {
		seen[field] = true
		return r.Skip()
	})
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	nums := make([]int32, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

package result

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeLine(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, &bytes.Buffer{})

	tests := []struct {
		name string
		o    Outcome
		want string
	}{
		{
			name: "good",
			o:    Outcome{Kind: Good, Link: "/collections", Status: 200},
			want: "✅ [200] /collections",
		},
		{
			name: "broken by status",
			o:    Outcome{Kind: Broken, Link: "/gone", Status: 404},
			want: "❌ [404] /gone (BROKEN LINK DETECTED)",
		},
		{
			name: "broken by content",
			o:    Outcome{Kind: Broken, Link: "/products/ghost", Status: 200, Reason: "Resource not found"},
			want: "❌ [200] /products/ghost (Resource not found)",
		},
		{
			name: "transport error",
			o:    Outcome{Kind: TransportError, Link: "/cart", Error: "connection refused"},
			want: "⚠️  [ERR] /cart - connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.OutcomeLine(tt.o))
		})
	}
}

func TestSummary_AllGood(t *testing.T) {
	var buf bytes.Buffer
	r := &Report{Good: []Outcome{{Kind: Good, Link: "/", Status: 200}}}

	NewPrinter(&buf, &buf).Summary(r)

	got := buf.String()
	assert.Contains(t, got, "📊 SUMMARY REPORT")
	assert.Contains(t, got, "✅ Working links: 1")
	assert.Contains(t, got, "❌ Broken links:  0")
	assert.Contains(t, got, "📝 Total checked: 1")
	assert.Contains(t, got, "🎉 All links are working correctly!")
	assert.NotContains(t, got, "BROKEN LINKS FOUND")
	assert.NotContains(t, got, "CONNECTION ERRORS")
}

func TestSummary_WithFailures(t *testing.T) {
	var buf bytes.Buffer
	r := &Report{
		Good: []Outcome{{Kind: Good, Link: "/", Status: 200}},
		Broken: []Outcome{
			{Kind: Broken, Link: "/gone", Status: 404},
			{Kind: Broken, Link: "/products/ghost", Status: 200, Reason: "Resource not found"},
		},
		Errors: []Outcome{{Kind: TransportError, Link: "/cart", Error: "connection refused"}},
		Stats:  Stats{Duration: 1500 * time.Millisecond},
	}

	NewPrinter(&buf, &buf).Summary(r)

	got := buf.String()
	assert.Contains(t, got, "❌ Broken links:  2")
	assert.Contains(t, got, "⚠️  Errors:       1")
	assert.Contains(t, got, "📝 Total checked: 4")
	assert.Contains(t, got, "1.5s")
	assert.Contains(t, got, "🚨 BROKEN LINKS FOUND:")
	assert.Contains(t, got, "      Status: 404\n")
	assert.Contains(t, got, "      Status: 200 | Reason: Resource not found\n")
	assert.Contains(t, got, "⚠️  CONNECTION ERRORS:")
	assert.Contains(t, got, "      Error: connection refused\n")
	assert.NotContains(t, got, "All links are working correctly")

	// Broken listing preserves discovery order.
	assert.Less(t, strings.Index(got, "❌ /gone"), strings.Index(got, "❌ /products/ghost"))
}

func TestSeedFailed(t *testing.T) {
	var out, errOut bytes.Buffer
	NewPrinter(&out, &errOut).SeedFailed(0, "dial tcp 127.0.0.1:3000: connect: connection refused")

	got := errOut.String()
	assert.Contains(t, got, "❌ FATAL: Could not fetch homepage!")
	assert.Contains(t, got, "   Status: 0\n")
	assert.Contains(t, got, "   Error: dial tcp 127.0.0.1:3000: connect: connection refused\n")
	assert.Contains(t, got, "npm run dev")
	assert.Empty(t, out.String(), "the fatal block goes to the error stream only")
}

func TestSeedFailed_StatusOnly(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, &buf).SeedFailed(500, "")

	assert.Contains(t, buf.String(), "   Status: 500\n")
	assert.NotContains(t, buf.String(), "Error:")
}

func TestDiscovered(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, &buf).Discovered(Stats{LinksFound: 5, Internal: 2, Denylisted: 1, External: 1, Skipped: 1})

	got := buf.String()
	assert.Contains(t, got, "📝 Found 5 total links on homepage")
	assert.Contains(t, got, "🔗 Internal links to verify: 2")
	assert.Contains(t, got, "🌐 External links (skipped): 3")
	assert.Contains(t, got, "(1 denylisted, 1 other hosts, 1 non-page)")
}

func TestReport_AddAndExitCode(t *testing.T) {
	r := &Report{}
	assert.Equal(t, 0, r.ExitCode())

	r.Add(Outcome{Kind: Good, Link: "/"})
	assert.Equal(t, 0, r.ExitCode())
	assert.Len(t, r.Good, 1)

	r.Add(Outcome{Kind: TransportError, Link: "/cart"})
	assert.Equal(t, 1, r.ExitCode())
	assert.Len(t, r.Errors, 1)

	r.Add(Outcome{Kind: Broken, Link: "/gone"})
	assert.Len(t, r.Broken, 1)
	assert.Equal(t, 3, r.Checked())
}

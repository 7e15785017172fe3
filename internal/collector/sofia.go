package collector

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/logger"
	"codeberg.org/mutker/fstelegraf/internal/metrics"
	"golang.org/x/net/html/charset"
)

const (
	cmdSofiaStatus        = "sofia xmlstatus"
	cmdSofiaProfileStatus = "sofia xmlstatus profile %s"
	measurementSofia      = "freeswitch_sofia_profile_sessions"
)

type sofiaStatus struct {
	Profiles []struct {
		Names []string `xml:"name"`
	} `xml:"profile"`
}

type sofiaProfileStatus struct {
	Info *sofiaProfileInfo `xml:"profile-info"`
}

type sofiaProfileInfo struct {
	CallsIn        *string `xml:"calls-in"`
	CallsOut       *string `xml:"calls-out"`
	FailedCallsIn  *string `xml:"failed-calls-in"`
	FailedCallsOut *string `xml:"failed-calls-out"`
}

func collectSofiaProfiles(ctx context.Context, cy *cycle) []metrics.Metric {
	status, ok := cy.api(ctx, cmdSofiaStatus)
	if !ok {
		return nil
	}

	profiles, err := parseProfileNames(status)
	if err != nil {
		logger.Debug().Err(err).Msg("Unparsable sofia profile list")
		return nil
	}

	var out []metrics.Metric
	for _, profile := range profiles {
		detail, ok := cy.api(ctx, fmt.Sprintf(cmdSofiaProfileStatus, profile))
		if !ok {
			continue
		}

		fields, err := parseProfileCounters(detail)
		if err != nil {
			logger.Debug().Err(err).Str("profile", profile).Msg("Skipping sofia profile")
			continue
		}
		if len(fields) == 0 {
			continue
		}

		out = append(out, metrics.New(measurementSofia, fields, metrics.Tag{Key: "profile", Value: profile}))
	}

	return out
}

// parseProfileNames returns the distinct, non-empty profile names listed
// under <profile><name>, sorted for stable output.
func parseProfileNames(text string) ([]string, error) {
	var status sofiaStatus
	if err := decodeXML(text, &status); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, p := range status.Profiles {
		for _, name := range p.Names {
			if name = strings.TrimSpace(name); name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// parseProfileCounters reads the call counters from a per-profile report.
// A missing <profile-info> section yields no fields; a missing or
// non-integer counter drops that field only.
func parseProfileCounters(text string) (metrics.Fields, error) {
	var status sofiaProfileStatus
	if err := decodeXML(text, &status); err != nil {
		return nil, err
	}
	if status.Info == nil {
		return nil, nil
	}

	counters := []struct {
		key   string
		value *string
	}{
		{"total_inbound", status.Info.CallsIn},
		{"total_outbound", status.Info.CallsOut},
		{"failed_inbound", status.Info.FailedCallsIn},
		{"failed_outbound", status.Info.FailedCallsOut},
	}

	var fields metrics.Fields
	for _, c := range counters {
		if c.value == nil {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(*c.value), 10, 64)
		if err != nil {
			continue
		}
		fields.Set(c.key, n)
	}

	return fields, nil
}

// decodeXML decodes text as a single XML document. The switch declares
// ISO-8859-1, so non-UTF-8 charsets are converted on the fly. Anything but
// whitespace, comments or processing instructions after the root element is
// an error.
func decodeXML(text string, v any) error {
	d := xml.NewDecoder(strings.NewReader(text))
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(v); err != nil {
		return err
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		case xml.Comment, xml.ProcInst:
			continue
		}
		return errors.New().WithData(errors.ErrMalformedReport, fmt.Sprintf("trailing %T after root element", tok))
	}
}

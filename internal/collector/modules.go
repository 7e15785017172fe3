package collector

import (
	"context"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/logger"
)

const (
	cmdShowModules = "show modules"

	moduleTypeTimer = "timer"
)

// moduleInfo is one row of the "show modules" listing.
type moduleInfo struct {
	Type     string
	Name     string
	IKey     string
	Filename string
}

// moduleInventory queries the module listing at most once per cycle.
type moduleInventory struct {
	cycle   *cycle
	loaded  bool
	modules []moduleInfo
}

func (inv *moduleInventory) list(ctx context.Context) []moduleInfo {
	if inv.loaded {
		return inv.modules
	}
	inv.loaded = true

	if resp, ok := inv.cycle.api(ctx, cmdShowModules); ok {
		inv.modules = parseModuleList(resp)
	}

	return inv.modules
}

func (inv *moduleInventory) timers(ctx context.Context) []moduleInfo {
	var out []moduleInfo
	for _, m := range inv.list(ctx) {
		if m.Type == moduleTypeTimer {
			out = append(out, m)
		}
	}

	return out
}

// parseModuleList reads a listing such as
//
//	type,name,ikey,filename
//	timer,soft,CORE_SOFTTIMER_MODULE,
//	api,bgapi,mod_commands,/usr/lib/freeswitch/mod/mod_commands.so
//
//	2 total.
func parseModuleList(text string) []moduleInfo {
	var modules []moduleInfo
	for _, line := range lines(text) {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, ",") || strings.HasPrefix(line, "type") {
			continue
		}

		cols := strings.SplitN(line, ",", 4)
		if len(cols) < 4 {
			logger.Debug().Str("line", line).Msg("Skipping short module row")
			continue
		}

		modules = append(modules, moduleInfo{
			Type:     strings.TrimSpace(cols[0]),
			Name:     strings.TrimSpace(cols[1]),
			IKey:     strings.TrimSpace(cols[2]),
			Filename: strings.TrimSpace(cols[3]),
		})
	}

	return modules
}

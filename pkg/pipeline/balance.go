package pipeline

import (
	"strings"

	"github.com/stitchline/stitchline/pkg/plan"
)

// Balance loads the operation bulletin and sizes machine allocations
// against the merged demand. The bulletin is returned alongside the
// balanced list so callers can reuse its style and demand block.
func Balance(opts Options) (*plan.Bulletin, []plan.BalancedOperation, error) {
	b, err := LoadBulletin(opts)
	if err != nil {
		return nil, nil, err
	}

	balanced, err := plan.Balance(b.Operations, opts.Demand(b))
	if err != nil {
		return nil, nil, err
	}

	return b, balanced, nil
}

// LoadBulletin reads the bulletin from inline content or from disk.
func LoadBulletin(opts Options) (*plan.Bulletin, error) {
	var b *plan.Bulletin
	var err error

	if opts.Bulletin != "" {
		b, err = plan.ReadBulletin(strings.NewReader(opts.Bulletin), opts.BulletinFormat)
	} else {
		b, err = plan.ReadBulletinFile(opts.BulletinPath)
	}
	if err != nil {
		return nil, err
	}

	// The caller's style number wins over the bulletin's.
	if opts.Style != "" {
		b.Style = opts.Style
	}

	return b, nil
}

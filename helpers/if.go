package helpers

import (
	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/views"
)

// If renders its block while the value at its path is truthy, and its
// inverse otherwise, switching when the value changes.
func If(params []stache.Param, opts *views.HelperOptions) error {
	return conditional(params, opts, true)
}

// Unless is If with the blocks swapped.
func Unless(params []stache.Param, opts *views.HelperOptions) error {
	return conditional(params, opts, false)
}

func conditional(params []stache.Param, opts *views.HelperOptions, want bool) error {
	if len(params) != 1 {
		return viewbind.Configurationf(opts.Name, "expected one argument, got %d", len(params))
	}
	if opts.Fn == nil {
		return viewbind.Configurationf(opts.Name, "must be used as a block")
	}

	ctx := opts.Context()
	choose := func(v interface{}) (*stache.Program, interface{}) {
		if views.Truthy(v) == want {
			return opts.Fn, ctx
		}
		return opts.Inverse, ctx
	}

	path, ok := params[0].Path()
	if !ok {
		prog, _ := choose(params[0].Value)
		return opts.RenderBlock(prog, ctx)
	}
	_, err := opts.AppendBoundView(path, choose)
	return err
}

// Package control
// Author: momentics <momentics@gmail.com>
//
// Construction-time configuration, metrics registry and allocation tracing
// for hioload-vpages. Nothing here sits on the allocation hot path except
// the optional TraceBuffer sink.
package control

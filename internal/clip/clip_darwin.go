//go:build darwin

package clip

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #include <stdlib.h>
// #include <string.h>
//
// static long clipkeep_change_count(void) {
//     return (long)[[NSPasteboard generalPasteboard] changeCount];
// }
//
// static char *clipkeep_join(NSArray *types) {
//     if (types == nil) return NULL;
//     NSString *s = [types componentsJoinedByString:@"\n"];
//     return strdup([s UTF8String]);
// }
//
// static char *clipkeep_board_types(void) {
//     @autoreleasepool {
//         return clipkeep_join([[NSPasteboard generalPasteboard] types]);
//     }
// }
//
// static int clipkeep_item_count(void) {
//     @autoreleasepool {
//         return (int)[[[NSPasteboard generalPasteboard] pasteboardItems] count];
//     }
// }
//
// static char *clipkeep_item_types(int i) {
//     @autoreleasepool {
//         NSArray *items = [[NSPasteboard generalPasteboard] pasteboardItems];
//         if (i < 0 || i >= (int)[items count]) return NULL;
//         NSPasteboardItem *item = items[i];
//         return clipkeep_join([item types]);
//     }
// }
//
// static void *clipkeep_item_data(int i, const char *type, int *length) {
//     @autoreleasepool {
//         *length = 0;
//         NSArray *items = [[NSPasteboard generalPasteboard] pasteboardItems];
//         if (i < 0 || i >= (int)[items count]) return NULL;
//         NSPasteboardItem *item = items[i];
//         NSData *d = [item dataForType:[NSString stringWithUTF8String:type]];
//         if (d == nil || [d length] == 0) return NULL;
//         *length = (int)[d length];
//         void *buf = malloc(*length);
//         memcpy(buf, [d bytes], *length);
//         return buf;
//     }
// }
//
// static void clipkeep_clear(void) {
//     [[NSPasteboard generalPasteboard] clearContents];
// }
//
// static void clipkeep_set_data(const char *type, const void *data, int length) {
//     @autoreleasepool {
//         NSData *d = [NSData dataWithBytes:data length:length];
//         [[NSPasteboard generalPasteboard] setData:d
//                                           forType:[NSString stringWithUTF8String:type]];
//     }
// }
import "C"

import (
	"strings"
	"unsafe"
)

type darwinBackend struct{}

// New returns the macOS NSPasteboard backend.
func New() Pasteboard { return darwinBackend{} }

func (darwinBackend) Name() string { return "macOS NSPasteboard" }

func (darwinBackend) ChangeCount() int64 { return int64(C.clipkeep_change_count()) }

func (darwinBackend) Types() []string { return splitTypes(C.clipkeep_board_types()) }

func (darwinBackend) Items() []Item {
	n := int(C.clipkeep_item_count())
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, darwinItem{
			index: i,
			types: splitTypes(C.clipkeep_item_types(C.int(i))),
		})
	}
	return items
}

func (darwinBackend) Clear() { C.clipkeep_clear() }

func (darwinBackend) SetData(typ string, data []byte) {
	ctype := C.CString(typ)
	defer C.free(unsafe.Pointer(ctype))
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = C.CBytes(data)
		defer C.free(ptr)
	}
	C.clipkeep_set_data(ctype, ptr, C.int(len(data)))
}

func (darwinBackend) Close() {}

// darwinItem reads lazily by index. If another application replaces the
// pasteboard between Items and Data, Data returns the new contents or nil.
type darwinItem struct {
	index int
	types []string
}

func (it darwinItem) Types() []string { return it.types }

func (it darwinItem) Data(typ string) []byte {
	ctype := C.CString(typ)
	defer C.free(unsafe.Pointer(ctype))
	var length C.int
	ptr := C.clipkeep_item_data(C.int(it.index), ctype, &length)
	if ptr == nil {
		return nil
	}
	defer C.free(ptr)
	return C.GoBytes(ptr, length)
}

// splitTypes converts a newline-joined, malloc'd C string into type tags and
// frees it.
func splitTypes(cs *C.char) []string {
	if cs == nil {
		return nil
	}
	defer C.free(unsafe.Pointer(cs))
	s := C.GoString(cs)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

//go:build darwin && cgo

package macos

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework AppKit -framework Foundation

#include <stdlib.h>
#include <string.h>
#import <AppKit/AppKit.h>

struct voice_list {
	int count;
	char **handles;
};

static char *dup_value(id value) {
	if (value == nil || value == [NSNull null]) {
		return NULL;
	}
	NSString *s = [value isKindOfClass:[NSString class]] ? (NSString *)value : [value description];
	const char *utf8 = [s UTF8String];
	return utf8 ? strdup(utf8) : NULL;
}

static struct voice_list available_voices(void) {
	struct voice_list list = {0, NULL};
	@autoreleasepool {
		NSArray<NSString *> *voices = [NSSpeechSynthesizer availableVoices];
		list.count = (int)[voices count];
		if (list.count == 0) {
			return list;
		}
		list.handles = calloc(list.count, sizeof(char *));
		for (int i = 0; i < list.count; i++) {
			list.handles[i] = dup_value(voices[i]);
		}
	}
	return list;
}

// voice_attribute returns the stringified attribute, or NULL when absent.
static char *voice_attribute(const char *handle, const char *key) {
	char *out = NULL;
	@autoreleasepool {
		NSString *voice = [NSString stringWithUTF8String:handle];
		NSDictionary *attrs = [NSSpeechSynthesizer attributesForVoice:voice];
		out = dup_value(attrs[[NSString stringWithUTF8String:key]]);
	}
	return out;
}
*/
import "C"

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/MrWong99/voicelist/pkg/voice"
)

// queriedAttrs are the keys read for every voice.
var queriedAttrs = []string{
	voice.AttrIdentifier,
	voice.AttrName,
	voice.AttrGender,
	voice.AttrAge,
	voice.AttrLocale,
	voice.AttrDesirability,
}

// AvailableVoices returns the installed voice identifiers in the order
// NSSpeechSynthesizer reports them.
func (s *Source) AvailableVoices(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := C.available_voices()
	if list.count == 0 {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(list.handles))

	ptrs := unsafe.Slice(list.handles, int(list.count))
	handles := make([]string, 0, len(ptrs))
	for _, p := range ptrs {
		if p == nil {
			continue
		}
		handles = append(handles, C.GoString(p))
		C.free(unsafe.Pointer(p))
	}
	return handles, nil
}

// AttributesForVoice returns the attributes NSSpeechSynthesizer reports for
// handle. Keys the platform does not report are left out of the mapping.
func (s *Source) AttributesForVoice(ctx context.Context, handle string) (voice.Attributes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := C.CString(handle)
	defer C.free(unsafe.Pointer(ch))

	attrs := make(voice.Attributes, len(queriedAttrs))
	for _, key := range queriedAttrs {
		ck := C.CString(key)
		v := C.voice_attribute(ch, ck)
		C.free(unsafe.Pointer(ck))
		if v == nil {
			continue
		}
		attrs[key] = C.GoString(v)
		C.free(unsafe.Pointer(v))
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("macos: no attributes for voice %q", handle)
	}
	return attrs, nil
}

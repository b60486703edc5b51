//go:build openjpeg && cgo

package jpeg2k

/*
#cgo pkg-config: libopenjp2
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#ifndef __has_include
#define __has_include(x) 0
#endif
#if __has_include(<openjpeg-2.5/openjpeg.h>)
#include <openjpeg-2.5/openjpeg.h>
#elif __has_include(<openjpeg-2.4/openjpeg.h>)
#include <openjpeg-2.4/openjpeg.h>
#elif __has_include(<openjpeg-2.3/openjpeg.h>)
#include <openjpeg-2.3/openjpeg.h>
#else
#include <openjpeg.h>
#endif

typedef struct {
	uint8_t *data;
	size_t length;
	size_t offset;
} jpeg2k_buffer;

static void jpeg2k_buffer_free(void *user_data) {
	jpeg2k_buffer *buffer = (jpeg2k_buffer*)user_data;
	if (!buffer) {
		return;
	}
	if (buffer->data) {
		free(buffer->data);
	}
	free(buffer);
}

static jpeg2k_buffer* jpeg2k_buffer_new(uint8_t *data, size_t len) {
	jpeg2k_buffer *buffer = (jpeg2k_buffer*)malloc(sizeof(jpeg2k_buffer));
	if (!buffer) {
		return NULL;
	}
	buffer->data = data;
	buffer->length = len;
	buffer->offset = 0;
	return buffer;
}

static OPJ_SIZE_T jpeg2k_stream_read(void *p_buffer, OPJ_SIZE_T nb_bytes, void *p_user_data) {
	jpeg2k_buffer *buffer = (jpeg2k_buffer*)p_user_data;
	if (!buffer || nb_bytes == 0) {
		return 0;
	}
	size_t remaining = 0;
	if (buffer->length > buffer->offset) {
		remaining = buffer->length - buffer->offset;
	}
	if (remaining == 0) {
		return (OPJ_SIZE_T)-1;
	}
	if ((size_t)nb_bytes > remaining) {
		nb_bytes = (OPJ_SIZE_T)remaining;
	}
	memcpy(p_buffer, buffer->data + buffer->offset, (size_t)nb_bytes);
	buffer->offset += (size_t)nb_bytes;
	return nb_bytes;
}

static OPJ_OFF_T jpeg2k_stream_skip(OPJ_OFF_T nb_bytes, void *p_user_data) {
	jpeg2k_buffer *buffer = (jpeg2k_buffer*)p_user_data;
	if (!buffer || nb_bytes <= 0) {
		return 0;
	}
	size_t available = 0;
	if (buffer->length > buffer->offset) {
		available = buffer->length - buffer->offset;
	}
	size_t request = (size_t)nb_bytes;
	if (request > available) {
		request = available;
	}
	buffer->offset += request;
	return (OPJ_OFF_T)request;
}

static OPJ_BOOL jpeg2k_stream_seek(OPJ_OFF_T nb_bytes, void *p_user_data) {
	jpeg2k_buffer *buffer = (jpeg2k_buffer*)p_user_data;
	if (!buffer || nb_bytes < 0) {
		return OPJ_FALSE;
	}
	size_t target = (size_t)nb_bytes;
	if (target > buffer->length) {
		return OPJ_FALSE;
	}
	buffer->offset = target;
	return OPJ_TRUE;
}

static opj_stream_t* jpeg2k_stream_create(jpeg2k_buffer *buffer) {
	if (!buffer) {
		return NULL;
	}
	opj_stream_t *stream = opj_stream_create(OPJ_J2K_STREAM_CHUNK_SIZE, OPJ_TRUE);
	if (!stream) {
		return NULL;
	}
	opj_stream_set_user_data(stream, buffer, jpeg2k_buffer_free);
	opj_stream_set_user_data_length(stream, buffer->length);
	opj_stream_set_read_function(stream, jpeg2k_stream_read);
	opj_stream_set_skip_function(stream, jpeg2k_stream_skip);
	opj_stream_set_seek_function(stream, jpeg2k_stream_seek);
	return stream;
}

void goJpeg2kInfo(char *msg, void *ctx);
void goJpeg2kWarn(char *msg, void *ctx);
void goJpeg2kError(char *msg, void *ctx);

static void jpeg2k_info_cb(const char *msg, void *ctx)  { goJpeg2kInfo((char*)msg, ctx); }
static void jpeg2k_warn_cb(const char *msg, void *ctx)  { goJpeg2kWarn((char*)msg, ctx); }
static void jpeg2k_error_cb(const char *msg, void *ctx) { goJpeg2kError((char*)msg, ctx); }

static void jpeg2k_install_handlers(opj_codec_t *codec, void *ctx) {
	opj_set_info_handler(codec, jpeg2k_info_cb, ctx);
	opj_set_warning_handler(codec, jpeg2k_warn_cb, ctx);
	opj_set_error_handler(codec, jpeg2k_error_cb, ctx);
}
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"
)

// nativeDecode runs one OpenJPEG decode over an in-memory payload. All
// codec and stream state is per call; nothing is shared between
// invocations.
func nativeDecode(data []byte, format Format, opts DecodeOptions) (*Image, error) {
	cBuf := C.CBytes(data)
	if cBuf == nil && len(data) > 0 {
		return nil, fmt.Errorf("%w: buffer allocation", ErrDecodeFailed)
	}
	buffer := C.jpeg2k_buffer_new((*C.uint8_t)(cBuf), C.size_t(len(data)))
	if buffer == nil {
		C.free(cBuf)
		return nil, fmt.Errorf("%w: buffer allocation", ErrDecodeFailed)
	}
	// The stream owns buffer (and the copied bytes) once created.
	stream := C.jpeg2k_stream_create(buffer)
	if stream == nil {
		C.jpeg2k_buffer_free(unsafe.Pointer(buffer))
		return nil, fmt.Errorf("%w: stream allocation", ErrDecodeFailed)
	}
	defer C.opj_stream_destroy(stream)

	codecFormat := C.OPJ_CODEC_J2K
	if format == FormatJP2 {
		codecFormat = C.OPJ_CODEC_JP2
	}
	codec := C.opj_create_decompress(codecFormat)
	if codec == nil {
		return nil, fmt.Errorf("%w: codec %s", ErrUnsupportedFeature, format)
	}
	defer C.opj_destroy_codec(codec)

	var state nativeMessages
	handle := cgo.NewHandle(&state)
	defer handle.Delete()
	ctx := C.malloc(C.size_t(unsafe.Sizeof(handle)))
	if ctx == nil {
		return nil, fmt.Errorf("%w: handle allocation", ErrDecodeFailed)
	}
	defer C.free(ctx)
	*(*cgo.Handle)(ctx) = handle
	C.jpeg2k_install_handlers(codec, ctx)

	var params C.opj_dparameters_t
	C.opj_set_default_decoder_parameters(&params)
	params.cp_reduce = C.OPJ_UINT32(opts.Reduce)
	if C.opj_setup_decoder(codec, &params) == 0 {
		return nil, state.wrap(ErrDecodeFailed)
	}
	if opts.NumThreads > 0 {
		C.opj_codec_set_threads(codec, C.int(opts.NumThreads))
	}

	var cimg *C.opj_image_t
	if C.opj_read_header(stream, codec, &cimg) == 0 || cimg == nil {
		return nil, state.wrap(ErrInvalidCodestream)
	}
	if C.opj_decode(codec, stream, cimg) == 0 || C.opj_end_decompress(codec, stream) == 0 {
		C.opj_image_destroy(cimg)
		return nil, state.wrap(ErrDecodeFailed)
	}

	img, err := wrapNativeImage(cimg, opts)
	if err != nil {
		C.opj_image_destroy(cimg)
		return nil, err
	}
	if opts.Strict && len(state.warnings) > 0 {
		img.Close()
		return nil, fmt.Errorf("%w: %s", ErrStrictMode, state.warnings[0])
	}
	return img, nil
}

// wrapNativeImage takes ownership of a decoded opj_image_t. Component
// planes alias the native allocation; the handle's release destroys it
// exactly once.
func wrapNativeImage(cimg *C.opj_image_t, opts DecodeOptions) (*Image, error) {
	numComps := int(cimg.numcomps)
	if numComps == 0 {
		return nil, fmt.Errorf("%w: decoder produced no components", ErrUnsupportedFeature)
	}
	ccomps := unsafe.Slice(cimg.comps, numComps)

	comps := make([]Component, numComps)
	for i, c := range ccomps {
		w, h := uint32(c.w), uint32(c.h)
		if w == 0 || h == 0 || c.data == nil {
			return nil, fmt.Errorf("%w: component %d has no data", ErrUnsupportedFeature, i)
		}
		if c.prec < 1 || c.prec > maxPrecision {
			return nil, fmt.Errorf("%w: component %d declares %d bits", ErrInvalidPrecision, i, uint32(c.prec))
		}
		comps[i] = Component{
			Width:     w,
			Height:    h,
			Precision: uint8(c.prec),
			Signed:    c.sgnd != 0,
			Alpha:     c.alpha != 0,
			Data:      unsafe.Slice((*int32)(unsafe.Pointer(c.data)), int(w)*int(h)),
		}
	}

	var cs ColorSpace
	switch cimg.color_space {
	case C.OPJ_CLRSPC_SRGB:
		cs = ColorSpaceSRGB
	case C.OPJ_CLRSPC_GRAY:
		cs = ColorSpaceGray
	case C.OPJ_CLRSPC_SYCC:
		cs = ColorSpaceSYCC
	case C.OPJ_CLRSPC_EYCC:
		cs = ColorSpaceEYCC
	case C.OPJ_CLRSPC_CMYK:
		cs = ColorSpaceCMYK
	case C.OPJ_CLRSPC_UNSPECIFIED:
		cs = ColorSpaceUnspecified
	default:
		cs = ColorSpaceUnknown
	}

	release := func() {
		C.opj_image_destroy(cimg)
	}
	// Decoded dimensions come from component 0 (reduced by cp_reduce).
	return newImage(comps[0].Width, comps[0].Height, cs, comps, opts.NumThreads, release), nil
}

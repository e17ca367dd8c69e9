// Package fits is a minimal reader/writer for the primary HDU of a FITS
// image file: the header-card parsing and pixel decoding the core pipeline
// needs, not a general-purpose FITS library.
//
// Field names mirror what telescope-control software actually writes:
// DATE-OBS, EXPTIME, the CCD-TEMP family, GAIN, IMAGETYP, INSTRUME/CAMERA,
// XBINNING/YBINNING, and the provenance fields this pipeline stamps back in
// (NDARKS, STACKCMD, HISTORY).
package fits

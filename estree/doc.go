// Package estree converts between ESTree JSON documents and the js package's
// owned tree.
//
// The transform never parses ECMAScript text itself. Host bundlers hand it
// the ESTree Program their own parser produced; DecodeModule narrows that
// document to the supported statement and expression set (rejecting the
// rest as unsupported) and EncodeModule serializes a transformed tree back
// for hosts that consume ASTs rather than printed source.
package estree

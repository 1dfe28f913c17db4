// Package specdoc turns a compiled Apex member into a Markdown spec
// document.
//
// A document joins three inputs: the ApexClass or ApexTrigger record, the
// member's symbol table returned by the compiler, and the ApexDoc comments
// extracted from the record body. Symbol table items without a matching
// comment render the NoApexDoc placeholder.
package specdoc

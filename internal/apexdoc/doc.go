// Package apexdoc recovers ApexDoc comments from Apex source text.
//
// Each declaration role (class header, trigger header, inner class,
// property, property with accessors, constructor, method) has a compiled
// Bundle built from named grammar elements. Extract scans source with one
// bundle; ExtractAll groups the results per scope for a class or trigger.
//
// Entries are joined against symbol table items by key. SignatureKey is
// the single function producing that key, for both the source signature
// (through NormalizeKey) and the symbol table's parameter list.
package apexdoc

/*
Package taggable associates free-form tags with arbitrary application resources.

A resource is anything identified by a (type, id) pair. It carries its tags either as an ordered
collection of Tag values (ObjectResource) or as a flat separator-joined string of tag names
(StringResource). The Manager reconciles the in-memory tags of a resource with the Tagging rows held
by a Store: it loads or creates tags by name, diffs the persisted set against the desired set and
stages only the inserts and deletes needed, committing them with a single Flush.

Tag names are compared case-insensitively everywhere, using Unicode case folding (see NameKey).
*/
package taggable

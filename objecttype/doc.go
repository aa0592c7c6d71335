/*
Package objecttype describes the set of record shapes an application declares
to the cloud database before opening a zone.

An Info value carries three things:
  - FormatVersion: the version of the registration format itself
  - ObjectTypeVersion: the version of the declared set of record shapes
  - ObjectTypes: the identifiers of the declared record shapes

Info values are produced by generated code (see the models package) and are
consumed once at startup:

	info := models.GetObjectTypeInfo()
	if err := z.CreateObjectType(info); err != nil {
	    return err
	}

Order of ObjectTypes carries no meaning. Use SameTypes to compare two
descriptors by their declared set.
*/
package objecttype

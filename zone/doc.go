/*
Package zone manages the lifecycle of a cloud database zone: declaring the
object types, opening the connection and reporting its state.

	z, err := zone.New(zone.DefaultConfig(), ddb.NewSchemaStore(client, table, logger), logger)
	if err != nil {
	    return err
	}
	if err := z.CreateObjectType(models.GetObjectTypeInfo()); err != nil {
	    return err
	}
	if err := z.Open(ctx); err != nil {
	    return err
	}
	defer z.Close()

Opening a zone registers its object type descriptor with the backend, which
rejects descriptors older than the one already stored. State changes can be
observed with Subscribe.
*/
package zone

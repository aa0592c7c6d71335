/*
Package chat is the repository the chat application talks to. It stores users,
push tokens and messages in an open zone and keeps the full_message
projection, a message joined with its author's profile, in step with every
message write.

	repo, err := chat.New(z, storage, logger)
	if err != nil {
	    return err
	}
	msg, err := repo.SendMessage(ctx, userID, "hello")

Every operation fails with a ZoneStateError while the zone is not connected.
*/
package chat

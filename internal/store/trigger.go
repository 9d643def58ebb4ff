package store

import (
	"fmt"

	"github.com/vestern/vestern/internal/domain"
)

// insertTriggerStatements builds the DDL that makes every transactions insert
// publish {"transaction_id": <id>} on channel. The channel must already be validated.
func insertTriggerStatements(channel string) []string {
	return []string{
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('%s', json_build_object('transaction_id', NEW.transaction_id)::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`, domain.INSERT_TRIGGER_FUNCTION, channel),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON transactions`, domain.INSERT_TRIGGER_NAME),
		fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT ON transactions FOR EACH ROW EXECUTE FUNCTION %s()`,
			domain.INSERT_TRIGGER_NAME, domain.INSERT_TRIGGER_FUNCTION),
	}
}

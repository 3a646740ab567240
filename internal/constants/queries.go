package constants

const (
	InsertFlight = `
	INSERT INTO flights (
		id,
		user_id,
		flight_number,
		airline,
		departure_city,
		arrival_city,
		departure_time,
		departure_timezone,
		arrival_time,
		arrival_timezone,
		aircraft_type,
		seat_number
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id, created_at, updated_at;
	`

	GetFlightByID = `
	SELECT * FROM flights WHERE id = $1 AND user_id = $2
	`

	ListFlightsByUser = `
	SELECT * FROM flights WHERE user_id = $1 ORDER BY departure_time DESC
	`

	UpdateFlight = `
	UPDATE flights SET
		flight_number = $3,
		airline = $4,
		departure_city = $5,
		arrival_city = $6,
		departure_time = $7,
		departure_timezone = $8,
		arrival_time = $9,
		arrival_timezone = $10,
		aircraft_type = $11,
		seat_number = $12,
		updated_at = now()
	WHERE id = $1 AND user_id = $2
	RETURNING *;
	`

	DeleteFlight = `
	DELETE FROM flights WHERE id = $1 AND user_id = $2
	`

	UserFlightTotals = `
	SELECT
		COUNT(*) AS total_flights,
		COALESCE(SUM(TRUNC(EXTRACT(EPOCH FROM (arrival_time - departure_time)) / 60)), 0)::bigint AS total_air_time
	FROM flights WHERE user_id = $1
	`
)

package redis

// adjustStock adds ARGV[1] to the level at KEYS[1] (missing key counts as 0).
// Returns the new level, or -1 without writing when the result would be negative.
const adjustStock = `
local key = KEYS[1]
local delta = tonumber(ARGV[1])
local current = tonumber(redis.call('get', key) or '0')

if current + delta < 0 then
    return -1
end

return redis.call('incrby', key, delta)
`

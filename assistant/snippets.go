package assistant

const reactCounter = `import React, { useState } from 'react';

const Counter: React.FC = () => {
  const [count, setCount] = useState(0);

  const handleIncrement = () => setCount(prev => prev + 1);
  const handleDecrement = () => setCount(prev => prev - 1);

  return (
    <div style={{ padding: '20px', textAlign: 'center' }}>
      <p style={{ fontSize: '24px' }}>Count: {count}</p>
      <button onClick={handleIncrement} style={{ marginRight: '10px' }}>Increment</button>
      <button onClick={handleDecrement}>Decrement</button>
    </div>
  );
};

export default Counter;`

const loginForm = `<!-- HTML -->
<div class="login-container">
  <h2>Login</h2>
  <form>
    <div class="input-group">
      <label for="username">Username</label>
      <input type="text" id="username" name="username" required>
    </div>
    <div class="input-group">
      <label for="password">Password</label>
      <input type="password" id="password" name="password" required>
    </div>
    <button type="submit">Log In</button>
  </form>
</div>

<!-- CSS -->
<style>
.login-container {
  width: 320px;
  margin: 60px auto;
  padding: 25px;
  background-color: #0f172a;
  border: 1px solid #334155;
  border-radius: 8px;
}
h2 { text-align: center; color: #cbd5e1; margin-bottom: 20px; }
.input-group { margin-bottom: 15px; }
label { display: block; margin-bottom: 5px; color: #94a3b8; font-size: 14px; }
input { width: 100%; padding: 10px; background-color: #1e293b; border: 1px solid #475569; border-radius: 4px; color: #f8fafc; }
button { width: 100%; padding: 10px; background-color: #3b82f6; border: none; border-radius: 4px; color: white; font-weight: bold; }
</style>`

const pythonSort = `def sort_items(items, key=None, reverse=False):
    """Return a new list with items in sorted order."""
    return sorted(items, key=key, reverse=reverse)


if __name__ == "__main__":
    print(sort_items([3, 1, 2]))`
